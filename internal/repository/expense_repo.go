package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"studiodesk/internal/domain"
)

type expenseModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Amount    int64     `gorm:"column:amount"`
	Note      string    `gorm:"column:note"`
	Category  string    `gorm:"column:category"`
	Date      time.Time `gorm:"column:date;index"`
	CreatedBy int64     `gorm:"column:created_by"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (expenseModel) TableName() string { return "expenses" }

func toDomainExpense(m expenseModel) domain.Expense {
	return domain.Expense{
		ID:        m.ID,
		Amount:    m.Amount,
		Note:      m.Note,
		Category:  m.Category,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

func (s *Store) CreateExpense(ctx context.Context, e *domain.Expense) error {
	m := expenseModel{
		Amount:    e.Amount,
		Note:      e.Note,
		Category:  e.Category,
		Date:      e.Date,
		CreatedBy: e.CreatedBy,
	}
	tx := s.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = toDomainExpense(m)
	return nil
}

// ListExpenses returns a page of expenses newest first, plus the row count
// and amount total of the whole filtered set.
func (s *Store) ListExpenses(ctx context.Context, from, to *time.Time, limit, offset int) ([]domain.Expense, int64, int64, error) {
	q := s.db.WithContext(ctx).Model(&expenseModel{})
	if from != nil && to != nil {
		q = q.Where("date >= ? AND date <= ?", *from, *to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var totalAmount int64
	if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount).Error; err != nil {
		return nil, 0, 0, err
	}

	var rows []expenseModel
	list := s.db.WithContext(ctx).Model(&expenseModel{})
	if from != nil && to != nil {
		list = list.Where("date >= ? AND date <= ?", *from, *to)
	}
	if err := list.Order("date DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, 0, err
	}

	out := make([]domain.Expense, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainExpense(m))
	}
	return out, total, totalAmount, nil
}

func (s *Store) ListExpensesInRange(ctx context.Context, from, to time.Time) ([]domain.Expense, error) {
	var rows []expenseModel
	tx := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Expense, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainExpense(m))
	}
	return out, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Delete(&expenseModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
