package models

import (
	"time"
)

// ProductColor is a named swatch as stored in the colors JSON column.
type ProductColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product represents a catalog listing.
type Product struct {
	ID             string         `gorm:"column:id;primaryKey"`
	Slug           string         `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	Name           string         `gorm:"column:name;not null"`
	Description    string         `gorm:"column:description;not null;default:''"`
	Price          int64          `gorm:"column:price;not null"`
	CompareAtPrice *int64         `gorm:"column:compare_at_price"`
	Images         []string       `gorm:"column:images;type:jsonb;serializer:json;not null"`
	Category       string         `gorm:"column:category;not null;index:products_category_idx"`
	Collections    []string       `gorm:"column:collections;type:jsonb;serializer:json;not null"`
	Tags           []string       `gorm:"column:tags;type:jsonb;serializer:json;not null"`
	Sizes          []string       `gorm:"column:sizes;type:jsonb;serializer:json;not null"`
	Colors         []ProductColor `gorm:"column:colors;type:jsonb;serializer:json;not null"`
	Featured       bool           `gorm:"column:featured;not null;default:false"`
	Trending       bool           `gorm:"column:trending;not null;default:false"`
	IsNew          bool           `gorm:"column:is_new;not null;default:false"`
	InStock        bool           `gorm:"column:in_stock;not null;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
