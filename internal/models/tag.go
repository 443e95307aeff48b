package models

import "time"

type Tag struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	DeletedOn *time.Time `json:"deletedOn"`
}

func (t *Tag) IsDeleted() bool {
	return t.DeletedOn != nil
}
