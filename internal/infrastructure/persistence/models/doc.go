// Package models holds the GORM persistence models. Each model converts to
// and from its domain aggregate; domain types carry no ORM tags.
package models
