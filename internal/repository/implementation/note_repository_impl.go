package implementation

import (
	"context"
	"sort"
	"time"

	"medstory-be/internal/entity"
	"medstory-be/internal/mapper"
	"medstory-be/internal/metrics"
	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/pkg/logger"
	"medstory-be/internal/repository/contract"
	"medstory-be/internal/taxonomy"
	"medstory-be/pkg/docstore"
)

const (
	noteRepositoryModule = "NOTE_REPOSITORY"
	notesCollectionID    = "notes"
)

type NoteRepositoryImpl struct {
	driver  docstore.Driver
	mapper  *mapper.NoteMapper
	remote  remoteCaller
	metrics *metrics.Metrics
	logger  logger.ILogger
}

func NewNoteRepository(driver docstore.Driver, m *metrics.Metrics, timeout time.Duration, log logger.ILogger) contract.NoteRepository {
	return &NoteRepositoryImpl{
		driver:  driver,
		mapper:  mapper.NewNoteMapper(),
		remote:  newRemoteCaller(driver.Name(), timeout, m),
		metrics: m,
		logger:  log,
	}
}

func (r *NoteRepositoryImpl) Put(ctx context.Context, uid string, note *entity.Note) (contract.DocumentRef, error) {
	if uid == "" {
		return contract.DocumentRef{}, &apperror.ValidationError{Field: "uid", Reason: "required"}
	}
	if err := note.Validate(); err != nil {
		return contract.DocumentRef{}, err
	}
	path, err := taxonomy.Resolve(note.Section)
	if err != nil {
		return contract.DocumentRef{}, err
	}
	if !note.OwnedBy(uid) {
		return contract.DocumentRef{}, &apperror.ValidationError{Field: "ImageRef", Reason: "not scoped to owner"}
	}

	docPath := path.Document(uid, note.FullDate)
	doc := r.mapper.ToDocument(uid, note)
	err = r.remote.do(ctx, "put", func(ctx context.Context) error {
		return r.driver.Set(ctx, docPath, doc)
	})
	if err != nil {
		return contract.DocumentRef{}, err
	}
	return contract.DocumentRef{Path: docPath, Id: note.FullDate}, nil
}

func (r *NoteRepositoryImpl) Query(ctx context.Context, uid string, section *string) ([]*entity.Note, error) {
	if uid == "" {
		return nil, &apperror.ValidationError{Field: "uid", Reason: "required"}
	}

	q := docstore.Query{OrderBy: mapper.FieldFullDate, Descending: true}
	if section != nil {
		path, err := taxonomy.Resolve(*section)
		if err != nil {
			return nil, err
		}
		q.Collection = path.Collection(uid)
	} else {
		q.Group = notesCollectionID
		q.Field = mapper.FieldUid
		q.Value = uid
	}

	var docs []docstore.Document
	err := r.remote.do(ctx, "query", func(ctx context.Context) error {
		var err error
		docs, err = r.driver.List(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}

	notes := make([]*entity.Note, 0, len(docs))
	for _, doc := range docs {
		note, err := r.mapper.ToEntity(uid, doc.Data)
		if err == nil && section != nil && note.Section != *section {
			err = &apperror.ValidationError{Field: mapper.FieldSection, Reason: "does not match collection"}
		}
		if err == nil && note.FullDate != docstore.DocumentID(doc.Path) {
			err = &apperror.ValidationError{Field: mapper.FieldFullDate, Reason: "does not match document id"}
		}
		if err != nil {
			r.metrics.MalformedSkipped(r.driver.Name())
			r.logger.Warn(noteRepositoryModule, "Skipping malformed note document", map[string]interface{}{
				"path":  doc.Path,
				"error": err.Error(),
			})
			continue
		}
		notes = append(notes, note)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].FullDate > notes[j].FullDate
	})
	return notes, nil
}

func (r *NoteRepositoryImpl) Remove(ctx context.Context, uid string, note *entity.Note) error {
	if uid == "" {
		return &apperror.ValidationError{Field: "uid", Reason: "required"}
	}
	if note == nil || note.FullDate == "" {
		return &apperror.ValidationError{Field: "FullDate", Reason: "required"}
	}
	path, err := taxonomy.Resolve(note.Section)
	if err != nil {
		return err
	}

	docPath := path.Document(uid, note.FullDate)
	return r.remote.do(ctx, "remove", func(ctx context.Context) error {
		return r.driver.Delete(ctx, docPath)
	})
}
