// FILE: internal/service/note_service.go
package service

import (
	"context"
	"errors"
	"time"

	"medstory-be/internal/entity"
	"medstory-be/internal/notify"
	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/pkg/logger"
	"medstory-be/internal/repository/contract"
	"medstory-be/internal/taxonomy"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const (
	noteServiceModule = "NOTE_SERVICE"

	LegBlob     = "blob"
	LegDocument = "document"
)

var ErrNoteNotFound = errors.New("note not found")

// INoteService sequences note operations across the document and blob stores.
type INoteService interface {
	// SaveNote uploads the photo first, when given, and writes the document only after the upload is confirmed.
	SaveNote(ctx context.Context, uid string, note *entity.Note, imageData []byte) (*entity.Note, error)
	// DeleteNote attempts both the photo and the document, reporting a PartialFailure when only some succeed.
	DeleteNote(ctx context.Context, uid string, note *entity.Note) error
	ListNotes(ctx context.Context, uid string, section *string) ([]*entity.Note, error)
	GetNote(ctx context.Context, uid, section, fullDate string) (*entity.Note, error)
	// FetchImage hands back a lazily resolvable handle for a stored photo reference.
	FetchImage(ctx context.Context, uid, ref string) (*entity.ImageHandle, error)
	ResolvePath(section string) (taxonomy.Path, error)
}

type noteService struct {
	notes    contract.NoteRepository
	images   contract.ImageRepository
	notifier notify.INotifier
	logger   logger.ILogger
	now      func() time.Time
}

func NewNoteService(
	notes contract.NoteRepository,
	images contract.ImageRepository,
	notifier notify.INotifier,
	log logger.ILogger,
) INoteService {
	return &noteService{
		notes:    notes,
		images:   images,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

func (s *noteService) ResolvePath(section string) (taxonomy.Path, error) {
	return taxonomy.Resolve(section)
}

func (s *noteService) SaveNote(ctx context.Context, uid string, note *entity.Note, imageData []byte) (*entity.Note, error) {
	if uid == "" {
		return nil, &apperror.ValidationError{Field: "uid", Reason: "required"}
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.ResolvePath(note.Section); err != nil {
		return nil, err
	}

	saved := note.Clone()
	uploaded := false
	if len(imageData) > 0 {
		ref, err := s.images.Upload(ctx, uid, imageData, saved.FullDate)
		if err != nil {
			s.logger.Error(noteServiceModule, "Image upload failed, note not saved", map[string]interface{}{
				"user_id":   uid,
				"full_date": saved.FullDate,
				"error":     err.Error(),
			})
			return nil, err
		}
		saved.ImageRef = &ref
		uploaded = true
	}

	if _, err := s.notes.Put(ctx, uid, saved); err != nil {
		if uploaded {
			s.logger.Warn(noteServiceModule, "Document write failed after upload, photo left in place", map[string]interface{}{
				"user_id":   uid,
				"image_ref": *saved.ImageRef,
				"error":     err.Error(),
			})
		}
		return nil, err
	}

	if uploaded && s.notifier != nil {
		evt := notify.UploadCompleted{
			Uid:        uid,
			ImageRef:   *saved.ImageRef,
			Section:    saved.Section,
			FullDate:   saved.FullDate,
			OccurredAt: s.now().UTC(),
		}
		if err := s.notifier.UploadCompleted(ctx, evt); err != nil {
			s.logger.Warn(noteServiceModule, "Failed to publish upload completed", map[string]interface{}{
				"user_id": uid,
				"error":   err.Error(),
			})
		}
	}

	s.logger.Info(noteServiceModule, "Note saved", map[string]interface{}{
		"user_id":   uid,
		"section":   saved.Section,
		"full_date": saved.FullDate,
		"has_image": uploaded,
	})
	return saved, nil
}

func (s *noteService) DeleteNote(ctx context.Context, uid string, note *entity.Note) error {
	if uid == "" {
		return &apperror.ValidationError{Field: "uid", Reason: "required"}
	}
	if note == nil || note.FullDate == "" {
		return &apperror.ValidationError{Field: "FullDate", Reason: "required"}
	}
	if _, err := s.ResolvePath(note.Section); err != nil {
		return err
	}
	if !note.OwnedBy(uid) {
		return &apperror.ValidationError{Field: "ImageRef", Reason: "not scoped to owner"}
	}

	// Both legs always run to completion; neither cancels the other.
	var blobErr, docErr error
	var g errgroup.Group
	if note.HasImage() {
		g.Go(func() error {
			blobErr = s.images.Delete(ctx, uid, note.ImageRef)
			return nil
		})
	}
	g.Go(func() error {
		docErr = s.notes.Remove(ctx, uid, note)
		return nil
	})
	_ = g.Wait()

	if !note.HasImage() {
		return docErr
	}

	combined := multierr.Combine(blobErr, docErr)
	if combined == nil {
		return nil
	}

	failure := &apperror.PartialFailure{
		Op: "delete note",
		Legs: []apperror.LegResult{
			{Store: LegBlob, Err: blobErr},
			{Store: LegDocument, Err: docErr},
		},
	}
	s.logger.Error(noteServiceModule, "Note delete did not fully complete", map[string]interface{}{
		"user_id":   uid,
		"full_date": note.FullDate,
		"failed":    len(multierr.Errors(combined)),
		"error":     combined.Error(),
	})
	return failure
}

func (s *noteService) ListNotes(ctx context.Context, uid string, section *string) ([]*entity.Note, error) {
	return s.notes.Query(ctx, uid, section)
}

func (s *noteService) GetNote(ctx context.Context, uid, section, fullDate string) (*entity.Note, error) {
	notes, err := s.notes.Query(ctx, uid, &section)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if n.FullDate == fullDate {
			return n, nil
		}
	}
	return nil, ErrNoteNotFound
}

func (s *noteService) FetchImage(ctx context.Context, uid, ref string) (*entity.ImageHandle, error) {
	return s.images.FetchRef(ctx, uid, ref)
}
