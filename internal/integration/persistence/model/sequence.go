// Package model defines database models for persistence layer.
package model

// SequenceModel represents the sequences table holding the last id handed out per table.
type SequenceModel struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for the SequenceModel.
func (SequenceModel) TableName() string {
	return "sequences"
}
