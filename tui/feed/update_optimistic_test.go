package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/writersguild/quill/domain"
)

func TestAddOptimisticPost_PrependsAndFocuses(t *testing.T) {
	m, store, _ := newTestModel(t, []domain.Post{makePost("p1", false)}, &stubRelations{}, true)
	m.cursor = 0

	local := domain.Post{ID: "local-1", Content: "Draft", IsOwn: true, CreatedAt: time.Now()}
	m, _ = m.Update(AddOptimisticPostMsg{Post: local})

	if len(m.items) != 2 || m.items[0].ID != "local-1" || m.items[0].Status != StatusPendingCreate {
		t.Fatalf("unexpected items: %#v", m.items)
	}
	if m.cursor != 0 {
		t.Fatal("cursor should focus the new item")
	}
	if _, ok := store.Get("local-1"); !ok {
		t.Fatal("optimistic post should be in the store")
	}
}

func TestPublishSuccess_SwapsLocalForServerPost(t *testing.T) {
	m, store, _ := newTestModel(t, nil, &stubRelations{}, true)
	local := domain.Post{ID: "local-1", Content: "Draft", IsOwn: true}
	m, _ = m.Update(AddOptimisticPostMsg{Post: local})

	server := makePost("p9", true)
	server.Content = "Draft"
	m, _ = m.Update(PublishResultMsg{LocalID: "local-1", Post: server})

	if len(m.items) != 1 || m.items[0].ID != "p9" || m.items[0].Status != StatusNormal {
		t.Fatalf("unexpected items: %#v", m.items)
	}
	if _, ok := store.Get("local-1"); ok {
		t.Fatal("local placeholder should be removed from the store")
	}
	if _, ok := store.Get("p9"); !ok {
		t.Fatal("server post should be in the store")
	}
}

func TestPublishFailure_MarksItemFailed(t *testing.T) {
	m, _, _ := newTestModel(t, nil, &stubRelations{}, true)
	m, _ = m.Update(AddOptimisticPostMsg{Post: domain.Post{ID: "local-1", Content: "Draft", IsOwn: true}})

	m, _ = m.Update(PublishResultMsg{LocalID: "local-1", Err: errors.New("boom")})

	if m.items[0].Status != StatusFailed || m.items[0].Err == nil {
		t.Fatalf("expected failed item, got %#v", m.items[0])
	}
}

func TestEditFailure_RollsContentBack(t *testing.T) {
	p := makePost("p1", true)
	p.Title = "Old title"
	p.Content = "Old content"
	m, store, _ := newTestModel(t, []domain.Post{p}, &stubRelations{}, true)

	m, _ = m.Update(UpdateOptimisticPostMsg{ID: "p1", Title: "New title", Content: "New content"})
	got, _ := store.Get("p1")
	if got.Title != "New title" || got.Content != "New content" {
		t.Fatalf("optimistic edit not applied: %#v", got)
	}

	m, _ = m.Update(PublishResultMsg{LocalID: "p1", IsEdit: true, Err: errors.New("boom")})
	got, _ = store.Get("p1")
	if got.Title != "Old title" || got.Content != "Old content" {
		t.Fatalf("edit should roll back exactly, got %#v", got)
	}
	if m.items[0].Status != StatusFailed {
		t.Fatalf("expected failed status, got %v", m.items[0].Status)
	}
}

func TestDeleteFailure_ReinsertsAtOriginalPosition(t *testing.T) {
	posts := []domain.Post{makePost("p1", false), makePost("p2", true), makePost("p3", false)}
	m, store, _ := newTestModel(t, posts, &stubRelations{}, true)

	m, _ = m.Update(DeleteOptimisticPostMsg{ID: "p2"})
	if len(m.items) != 2 {
		t.Fatalf("expected optimistic removal, got %#v", m.items)
	}
	if _, ok := store.Get("p2"); ok {
		t.Fatal("deleted post should leave the store")
	}

	m, _ = m.Update(DeleteResultMsg{ID: "p2", Err: errors.New("boom")})
	if len(m.items) != 3 || m.items[1].ID != "p2" || m.items[1].Status != StatusFailed {
		t.Fatalf("expected reinsertion at index 1, got %#v", m.items)
	}
	if _, ok := store.Get("p2"); !ok {
		t.Fatal("post should be restored to the store")
	}
}

func TestDeleteSuccess_DropsSnapshot(t *testing.T) {
	m, _, _ := newTestModel(t, []domain.Post{makePost("p1", true)}, &stubRelations{}, true)

	m, _ = m.Update(DeleteOptimisticPostMsg{ID: "p1"})
	m, _ = m.Update(DeleteResultMsg{ID: "p1"})

	if len(m.items) != 0 || len(m.pendingDeletes) != 0 {
		t.Fatalf("expected clean state, got items=%#v pending=%#v", m.items, m.pendingDeletes)
	}
}

func TestCommentOptimistic_AppendsAndBumpsCounter(t *testing.T) {
	p := makePost("p1", false)
	p.CommentsCount = 2
	m, store, _ := newTestModel(t, []domain.Post{p}, &stubRelations{}, true)
	m.showDetail = true
	m.detailID = "p1"

	local := domain.Comment{ID: "local-c1", PostID: "p1", Content: "Nice!", IsOwn: true}
	m, _ = m.Update(AddOptimisticCommentMsg{Comment: local})

	if len(m.comments) != 1 {
		t.Fatalf("expected optimistic comment, got %#v", m.comments)
	}
	got, _ := store.Get("p1")
	if got.CommentsCount != 3 {
		t.Fatalf("expected counter bump to 3, got %d", got.CommentsCount)
	}

	m, _ = m.Update(CommentResultMsg{PostID: "p1", LocalID: "local-c1", Err: errors.New("boom")})
	if len(m.comments) != 0 {
		t.Fatalf("failed comment should be removed, got %#v", m.comments)
	}
	got, _ = store.Get("p1")
	if got.CommentsCount != 2 {
		t.Fatalf("counter should roll back to 2, got %d", got.CommentsCount)
	}
}

func TestCommentSuccess_ReplacesLocalComment(t *testing.T) {
	m, _, _ := newTestModel(t, []domain.Post{makePost("p1", false)}, &stubRelations{}, true)
	m.showDetail = true
	m.detailID = "p1"

	m, _ = m.Update(AddOptimisticCommentMsg{Comment: domain.Comment{ID: "local-c1", PostID: "p1", Content: "Nice!"}})
	m, _ = m.Update(CommentResultMsg{PostID: "p1", LocalID: "local-c1", Comment: domain.Comment{ID: "c9", PostID: "p1", Content: "Nice!"}})

	if len(m.comments) != 1 || m.comments[0].ID != "c9" {
		t.Fatalf("expected server comment, got %#v", m.comments)
	}
}
