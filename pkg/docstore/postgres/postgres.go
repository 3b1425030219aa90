// Package postgres implements docstore.Driver on a single jsonb table through gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"medstory-be/pkg/docstore"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type documentRow struct {
	Path       string            `gorm:"primaryKey;type:text"`
	Collection string            `gorm:"type:text;index"`
	GroupName  string            `gorm:"type:text;index"`
	Body       datatypes.JSONMap `gorm:"type:jsonb;not null"`
}

func (documentRow) TableName() string {
	return "documents"
}

type Store struct {
	db *gorm.DB
}

// New migrates the documents table and returns a driver over db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Name() string {
	return "postgres"
}

func (s *Store) Set(ctx context.Context, path string, data map[string]interface{}) error {
	if !docstore.ValidDocumentPath(path) {
		return fmt.Errorf("invalid document path %q", path)
	}
	parent := docstore.Parent(path)
	row := documentRow{
		Path:       path,
		Collection: parent,
		GroupName:  docstore.CollectionID(parent),
		Body:       datatypes.JSONMap(data),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

func (s *Store) Get(ctx context.Context, path string) (map[string]interface{}, error) {
	var row documentRow
	err := s.db.WithContext(ctx).Where("path = ?", path).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}(row.Body), nil
}

func (s *Store) List(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	tx := s.db.WithContext(ctx).Model(&documentRow{})
	switch {
	case q.Collection != "":
		tx = tx.Where("collection = ?", q.Collection)
	case q.Group != "":
		tx = tx.Where("group_name = ?", q.Group)
	default:
		return nil, fmt.Errorf("query needs a collection or a group")
	}
	if q.Field != "" {
		tx = tx.Where("body ->> ? = ?", q.Field, q.Value)
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		tx = tx.Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "body ->> ? " + dir,
			Vars: []interface{}{q.OrderBy},
		}})
	}

	var rows []documentRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, docstore.Document{Path: row.Path, Data: map[string]interface{}(row.Body)})
	}
	return docs, nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	return s.db.WithContext(ctx).Where("path = ?", path).Delete(&documentRow{}).Error
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
