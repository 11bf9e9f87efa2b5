package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

// Value serializes the list for the database.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan deserializes the list from the database.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

type PolicyType struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"column:name;type:varchar(100);not null;unique" json:"name"`
	Description string `gorm:"column:description;type:varchar(500);not null;default:''" json:"description"`

	// RequiredDocuments seeds the label set of every claim of this type.
	RequiredDocuments StringList `gorm:"column:required_documents;type:json" json:"required_documents"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name.
func (PolicyType) TableName() string {
	return "policy_type"
}
