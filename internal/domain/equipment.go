package domain

import "time"

type EquipmentCondition string

const (
	ConditionGood        EquipmentCondition = "good"
	ConditionMinorDamage EquipmentCondition = "minor_damage"
	ConditionMajorDamage EquipmentCondition = "major_damage"
)

func (c EquipmentCondition) Valid() bool {
	switch c {
	case ConditionGood, ConditionMinorDamage, ConditionMajorDamage:
		return true
	}
	return false
}

type Equipment struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name" validate:"required"`
	Code      string             `json:"code" validate:"required"`
	Category  string             `json:"category,omitempty"`
	Condition EquipmentCondition `json:"condition"`
	// Available flips to false while the item is out on loan.
	Available bool      `json:"available"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
