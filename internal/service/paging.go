package service

import (
	"fmt"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"gorm.io/gorm"
)

func paginate[T any](q *gorm.DB, order string, page, size int) (model.Page[T], error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return model.Page[T]{}, fmt.Errorf("failed to count rows, %w", err)
	}

	var rows []T
	err := q.Session(&gorm.Session{}).
		Order(order).
		Offset(page * size).
		Limit(size).
		Find(&rows).
		Error
	if err != nil {
		return model.Page[T]{}, fmt.Errorf("failed to list rows, %w", err)
	}

	return model.NewPage(rows, total, page, size), nil
}
