package editor_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"mdsync/internal/editor"
	"mdsync/internal/storage"
	"mdsync/internal/storage/mocks"
)

func TestEditorService_CreateDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	docs := mocks.NewMockDocumentStore(ctrl)
	svc := editor.NewService(docs, nil, nil, testOptions(newManualClock()))

	tests := []struct {
		name      string
		req       editor.SaveDocumentRequest
		wantTitle string
	}{
		{"title from h1", editor.SaveDocumentRequest{Content: "intro\n\n# Heading One"}, "Heading One"},
		{"explicit title", editor.SaveDocumentRequest{Title: " Mine ", Content: "# Other"}, "Mine"},
		{"untitled", editor.SaveDocumentRequest{Content: "plain text"}, "Untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ any, doc *storage.Document) error {
					doc.ID = "new-id"
					return nil
				})

			doc, err := svc.CreateDocument(testContext(), tt.req)
			if err != nil {
				t.Fatalf("CreateDocument() error = %v", err)
			}
			if doc.ID != "new-id" || doc.Title != tt.wantTitle {
				t.Errorf("CreateDocument() = %+v, want title %q", doc, tt.wantTitle)
			}
			if len(doc.Hash) != 64 {
				t.Errorf("Hash = %q, want sha256 hex", doc.Hash)
			}
		})
	}
}

func TestEditorService_UpdateDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	docs := mocks.NewMockDocumentStore(ctrl)
	svc := editor.NewService(docs, nil, nil, testOptions(newManualClock()))
	ctx := testContext()

	docs.EXPECT().Get(gomock.Any(), "doc-1").Return(&storage.Document{ID: "doc-1", RelPath: "notes/weekly-plan.md", Content: "old", Hash: "x"}, nil)
	docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	doc, err := svc.UpdateDocument(ctx, "doc-1", editor.SaveDocumentRequest{Content: "no headings"})
	if err != nil {
		t.Fatalf("UpdateDocument() error = %v", err)
	}
	if doc.Title != "Weekly Plan" || doc.Content != "no headings" || doc.Hash == "x" {
		t.Errorf("UpdateDocument() = %+v", doc)
	}

	docs.EXPECT().Get(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
	if _, err := svc.UpdateDocument(ctx, "missing", editor.SaveDocumentRequest{}); !errors.Is(err, editor.ErrNotFound) {
		t.Errorf("UpdateDocument() error = %v, want ErrNotFound", err)
	}
}

func TestEditorService_DeleteAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	docs := mocks.NewMockDocumentStore(ctrl)
	svc := editor.NewService(docs, nil, nil, testOptions(newManualClock()))
	ctx := testContext()

	docs.EXPECT().Delete(gomock.Any(), "doc-1").Return(nil)
	docs.EXPECT().Delete(gomock.Any(), "missing").Return(storage.ErrNotFound)
	docs.EXPECT().List(gomock.Any()).Return(nil, errors.New("disk I/O error"))

	if err := svc.DeleteDocument(ctx, "doc-1"); err != nil {
		t.Errorf("DeleteDocument() error = %v", err)
	}
	if err := svc.DeleteDocument(ctx, "missing"); !errors.Is(err, editor.ErrNotFound) {
		t.Errorf("DeleteDocument() error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteDocument(ctx, ""); !errors.Is(err, editor.ErrInvalidInput) {
		t.Errorf("DeleteDocument(\"\") error = %v, want ErrInvalidInput", err)
	}
	_, err := svc.ListDocuments(ctx)
	if err == nil || errors.Is(err, editor.ErrNotFound) || !strings.Contains(err.Error(), "disk I/O error") {
		t.Errorf("ListDocuments() error = %v, want wrapped storage error", err)
	}
}

func TestEditorService_PasteImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	docs := mocks.NewMockDocumentStore(ctrl)
	images := mocks.NewMockImageStore(ctrl)
	clock := newManualClock()
	svc := editor.NewService(docs, images, nil, testOptions(clock))
	ctx := testContext()

	docs.EXPECT().Get(gomock.Any(), "doc-1").Return(&storage.Document{ID: "doc-1", Content: "before after", Hash: "x"}, nil)

	var stored *storage.Image
	images.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, img *storage.Image) error {
		stored = img
		return nil
	})
	var saved *storage.Document
	docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, doc *storage.Document) error {
		saved = doc
		return nil
	})

	resp, err := svc.PasteImage(ctx, "doc-1", editor.PasteImageRequest{Cursor: 6, MIME: "image/png", Data: []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("PasteImage() error = %v", err)
	}

	if !regexp.MustCompile(`^img-1717228800000-[0-9a-f]{8}$`).MatchString(resp.ID) {
		t.Errorf("ID = %q, want img-<unix millis>-<hex>", resp.ID)
	}
	if stored == nil || stored.ID != resp.ID || stored.DocumentID != "doc-1" || stored.MIME != "image/png" {
		t.Errorf("stored image = %+v", stored)
	}

	ref := "\n![" + resp.ID + "](" + resp.ID + ")\n"
	if resp.Content != "before"+ref+" after" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Cursor != 6+len(ref) {
		t.Errorf("Cursor = %d, want %d", resp.Cursor, 6+len(ref))
	}
	if resp.URL != "/api/images/"+resp.ID {
		t.Errorf("URL = %q", resp.URL)
	}
	if saved == nil || saved.Content != resp.Content || saved.Hash == "x" {
		t.Errorf("saved document = %+v", saved)
	}
}

func TestEditorService_PasteImageSaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	docs := mocks.NewMockDocumentStore(ctrl)
	images := mocks.NewMockImageStore(ctrl)
	svc := editor.NewService(docs, images, nil, testOptions(newManualClock()))
	ctx := testContext()

	tests := []struct {
		name      string
		deleteErr error
	}{
		{"image removed", nil},
		{"removal fails too", errors.New("database is locked")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs.EXPECT().Get(gomock.Any(), "doc-1").Return(&storage.Document{ID: "doc-1", Content: "text", Hash: "x"}, nil)
			var storedID string
			images.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, img *storage.Image) error {
				storedID = img.ID
				return nil
			})
			docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("disk I/O error"))
			var deletedID string
			images.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, id string) error {
				deletedID = id
				return tt.deleteErr
			})

			_, err := svc.PasteImage(ctx, "doc-1", editor.PasteImageRequest{Cursor: 4, MIME: "image/png", Data: []byte{1}})
			if err == nil || !strings.Contains(err.Error(), "disk I/O error") {
				t.Errorf("PasteImage() error = %v, want wrapped save error", err)
			}
			if deletedID == "" || deletedID != storedID {
				t.Errorf("deleted image %q, want stored image %q", deletedID, storedID)
			}
		})
	}
}

func TestEditorService_PasteImageValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	docs := mocks.NewMockDocumentStore(ctrl)
	images := mocks.NewMockImageStore(ctrl)
	svc := editor.NewService(docs, images, nil, testOptions(newManualClock()))

	tests := []struct {
		name      string
		req       editor.PasteImageRequest
		wantField string
	}{
		{"not an image", editor.PasteImageRequest{MIME: "text/plain", Data: []byte("x")}, "mime"},
		{"empty data", editor.PasteImageRequest{MIME: "image/png"}, "data"},
		{"too large", editor.PasteImageRequest{MIME: "image/png", Data: make([]byte, editor.MaxImageSize+1)}, "data"},
		{"negative cursor", editor.PasteImageRequest{MIME: "image/gif", Data: []byte{1}, Cursor: -3}, "cursor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PasteImage(testContext(), "doc-1", tt.req)
			var vErr *editor.ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tt.wantField {
				t.Errorf("PasteImage() error = %v, want validation error on %s", err, tt.wantField)
			}
		})
	}
}

func TestEditorService_GetImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	images := mocks.NewMockImageStore(ctrl)
	svc := editor.NewService(nil, images, nil, testOptions(newManualClock()))
	ctx := testContext()

	images.EXPECT().Get(gomock.Any(), "img-1-abc").Return(&storage.Image{ID: "img-1-abc", MIME: "image/png"}, nil)
	images.EXPECT().Get(gomock.Any(), "img-2").Return(nil, storage.ErrNotFound)

	img, err := svc.GetImage(ctx, "img-1-abc")
	if err != nil || img.MIME != "image/png" {
		t.Errorf("GetImage() = %+v, %v", img, err)
	}
	if _, err := svc.GetImage(ctx, "img-2"); !errors.Is(err, editor.ErrNotFound) {
		t.Errorf("GetImage() error = %v, want ErrNotFound", err)
	}
	// not an image id, the store is not consulted
	if _, err := svc.GetImage(ctx, "../etc/passwd"); !errors.Is(err, editor.ErrNotFound) {
		t.Errorf("GetImage() error = %v, want ErrNotFound", err)
	}
}
