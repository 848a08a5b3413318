package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/writersguild/quill/domain"
)

func (m Model) handleOptimisticMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AddOptimisticPostMsg:
		m.store.Put(msg.Post)
		m.items = append([]PostItem{{ID: msg.Post.ID, Status: StatusPendingCreate}}, m.items...)
		m.cursor = 0 // Focus the new item
		m.start = 0
		return m, nil

	case UpdateOptimisticPostMsg:
		i := m.itemIndex(msg.ID)
		if i < 0 {
			return m, nil
		}
		it := m.items[i]
		prev, ok := m.store.Get(msg.ID)
		if !ok {
			return m, nil
		}
		it.PrevTitle = prev.Title
		it.PrevContent = prev.Content
		it.Status = StatusPendingUpdate
		m.items[i] = it
		m.store.Apply(msg.ID, func(p *domain.Post) {
			p.Title = msg.Title
			p.Content = msg.Content
		})
		delete(m.renderCache, msg.ID)
		return m, nil

	case DeleteOptimisticPostMsg:
		i := m.itemIndex(msg.ID)
		if i < 0 {
			return m, nil
		}
		// Snapshot for reinsertion if the delete fails.
		if p, ok := m.store.Get(msg.ID); ok {
			m.pendingDeletes[msg.ID] = pendingDelete{post: p, index: i}
		}
		m.items = append(m.items[:i], m.items[i+1:]...)
		m.store.Remove(msg.ID)
		if m.cursor >= len(m.items) && m.cursor > 0 {
			m.cursor--
		}
		if m.showDetail && m.detailID == msg.ID {
			m.closeDetail()
		}
		m.ensureCursorVisible()
		return m, nil

	case PublishResultMsg:
		i := m.itemIndex(msg.LocalID)
		if msg.Err != nil {
			if i < 0 {
				return m, nil
			}
			it := m.items[i]
			it.Status = StatusFailed
			it.Err = msg.Err
			if msg.IsEdit {
				// Roll the edit back to the snapshot.
				m.store.Apply(it.ID, func(p *domain.Post) {
					p.Title = it.PrevTitle
					p.Content = it.PrevContent
				})
				delete(m.renderCache, it.ID)
			}
			m.items[i] = it
			return m, nil
		}

		if i < 0 {
			return m, nil
		}
		it := m.items[i]
		if !msg.IsEdit && it.ID != msg.Post.ID {
			// Swap the local placeholder for the server's post.
			m.store.Remove(it.ID)
			delete(m.renderCache, it.ID)
			it.ID = msg.Post.ID
		}
		m.store.Put(msg.Post)
		delete(m.renderCache, msg.Post.ID)
		it.Status = StatusNormal
		it.Err = nil
		it.PrevTitle = ""
		it.PrevContent = ""
		m.items[i] = it
		if m.showDetail && m.detailID == msg.LocalID {
			m.detailID = msg.Post.ID
		}
		return m, nil

	case DeleteResultMsg:
		pd, pending := m.pendingDeletes[msg.ID]
		delete(m.pendingDeletes, msg.ID)
		if msg.Err == nil || !pending {
			return m, nil
		}
		// Put the post back where it was.
		m.store.Put(pd.post)
		idx := pd.index
		if idx > len(m.items) {
			idx = len(m.items)
		}
		restored := PostItem{ID: msg.ID, Status: StatusFailed, Err: msg.Err}
		m.items = append(m.items[:idx], append([]PostItem{restored}, m.items[idx:]...)...)
		return m, nil

	case AddOptimisticCommentMsg:
		if !m.showDetail || m.detailID != msg.Comment.PostID {
			return m, nil
		}
		m.comments = append(m.comments, msg.Comment)
		m.store.Apply(msg.Comment.PostID, func(p *domain.Post) {
			p.CommentsCount++
		})
		return m, nil

	case CommentResultMsg:
		if msg.Err != nil {
			// Drop the optimistic comment and undo the counter bump.
			for i, c := range m.comments {
				if c.ID == msg.LocalID {
					m.comments = append(m.comments[:i], m.comments[i+1:]...)
					break
				}
			}
			m.store.Apply(msg.PostID, func(p *domain.Post) {
				if p.CommentsCount > 0 {
					p.CommentsCount--
				}
			})
			return m, nil
		}
		for i, c := range m.comments {
			if c.ID == msg.LocalID {
				m.comments[i] = msg.Comment
				break
			}
		}
		return m, nil

	case ToggleSettledMsg:
		// The controller already reconciled the store (confirm or rollback);
		// receiving the message is enough to trigger a re-render.
		_ = msg.Outcome
		return m, nil

	case FollowToggleResultMsg:
		delete(m.followPending, msg.AccountID)
		if msg.Err != nil {
			// Revert the optimistic flip.
			m.followingByID[msg.AccountID] = !msg.Follow
		}
		return m, nil
	}

	return m, nil
}

// itemIndex returns the position of the item with the given ID, or -1.
func (m Model) itemIndex(id string) int {
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
