package rules

import (
	"context"
	"errors"
	"time"

	"github.com/nextorder/promo-engine/pkg/db"
	pkgerrors "github.com/nextorder/promo-engine/pkg/errors"
	"gorm.io/gorm"
)

type ruleRecord struct {
	ID              int64  `gorm:"primaryKey"`
	Name            string `gorm:"not null;uniqueIndex"`
	Description     string
	Category        string `gorm:"index"`
	Priority        int    `gorm:"not null;default:10"`
	Active          bool   `gorm:"not null;default:false;index"`
	ConditionType   string `gorm:"not null"`
	ConditionValue  string
	ConditionParams map[string]string `gorm:"serializer:json"`
	ActionType      string            `gorm:"not null"`
	ActionValue     string
	ActionParams    map[string]string `gorm:"serializer:json"`
	ActionExclusive bool              `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ruleRecord) TableName() string {
	return "promo_rules"
}

// Repository is the GORM-backed rule store.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository bound to the given connection or
// transaction handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates or updates the backing table.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&ruleRecord{})
}

func (r *Repository) List(ctx context.Context) ([]Rule, error) {
	return r.list(ctx, r.db, false)
}

func (r *Repository) ListActive(ctx context.Context) ([]Rule, error) {
	return r.list(ctx, r.db, true)
}

func (r *Repository) list(ctx context.Context, db *gorm.DB, activeOnly bool) ([]Rule, error) {
	query := db.WithContext(ctx).Model(&ruleRecord{}).Order("priority ASC, id ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var records []ruleRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rules")
	}

	out := make([]Rule, 0, len(records))
	for _, record := range records {
		out = append(out, fromRecord(record))
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Rule, error) {
	record, err := r.find(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	rule := fromRecord(*record)
	return &rule, nil
}

func (r *Repository) find(ctx context.Context, db *gorm.DB, id int64) (*ruleRecord, error) {
	var record ruleRecord
	if err := db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rule")
	}
	return &record, nil
}

// Save validates and persists the rule. Activating rules and their
// exclusivity deactivations land in one transaction: either the whole batch
// commits or none of it does.
func (r *Repository) Save(ctx context.Context, rule *Rule) ([]int64, error) {
	if rule == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule is required")
	}
	if rule.Category == "" {
		rule.Category = rule.Condition.Type
	}
	if err := Validate(*rule); err != nil {
		return nil, err
	}

	var deactivated []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rule.Active {
			all, err := r.list(ctx, tx, false)
			if err != nil {
				return err
			}
			deactivated = PlanDeactivations(*rule, all)
			if len(deactivated) > 0 {
				if err := tx.Model(&ruleRecord{}).
					Where("id IN ?", deactivated).
					Update("active", false).Error; err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate conflicting rules")
				}
			}
		}

		record := toRecord(*rule)
		if err := tx.Save(&record).Error; err != nil {
			if db.IsUniqueViolation(err, "name") {
				return pkgerrors.New(pkgerrors.CodeConflict, "rule name already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist rule")
		}
		rule.ID = record.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deactivated, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ruleRecord{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete rule")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "rule not found")
	}
	return nil
}

func (r *Repository) Activate(ctx context.Context, id int64) ([]int64, error) {
	rule, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rule.Active = true
	return r.Save(ctx, rule)
}

func (r *Repository) Toggle(ctx context.Context, id int64) (bool, []int64, error) {
	rule, err := r.Get(ctx, id)
	if err != nil {
		return false, nil, err
	}

	if rule.Active {
		rule.Active = false
		if _, err := r.Save(ctx, rule); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	deactivated, err := r.Activate(ctx, id)
	if err != nil {
		return false, nil, err
	}
	return true, deactivated, nil
}

func toRecord(rule Rule) ruleRecord {
	return ruleRecord{
		ID:              rule.ID,
		Name:            rule.Name,
		Description:     rule.Description,
		Category:        rule.Category,
		Priority:        rule.Priority,
		Active:          rule.Active,
		ConditionType:   rule.Condition.Type,
		ConditionValue:  rule.Condition.Value,
		ConditionParams: rule.Condition.Params,
		ActionType:      rule.Action.Type,
		ActionValue:     rule.Action.Value,
		ActionParams:    rule.Action.Params,
		ActionExclusive: rule.Action.Exclusive,
	}
}

func fromRecord(record ruleRecord) Rule {
	return Rule{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Category:    record.Category,
		Priority:    record.Priority,
		Active:      record.Active,
		Condition: Condition{
			Type:   record.ConditionType,
			Value:  record.ConditionValue,
			Params: record.ConditionParams,
		},
		Action: Action{
			Type:      record.ActionType,
			Value:     record.ActionValue,
			Params:    record.ActionParams,
			Exclusive: record.ActionExclusive,
		},
	}
}
