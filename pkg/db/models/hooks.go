package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ID hooks keep inserts portable across postgres and the sqlite test
// driver, which has no gen_random_uuid().

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error            { ensureID(&u.ID); return nil }
func (b *Business) BeforeCreate(*gorm.DB) error        { ensureID(&b.ID); return nil }
func (bw *BusinessWorker) BeforeCreate(*gorm.DB) error { ensureID(&bw.ID); return nil }
func (s *Supplier) BeforeCreate(*gorm.DB) error        { ensureID(&s.ID); return nil }
func (i *Item) BeforeCreate(*gorm.DB) error            { ensureID(&i.ID); return nil }
func (u *UPIDetail) BeforeCreate(*gorm.DB) error       { ensureID(&u.ID); return nil }
func (t *Transaction) BeforeCreate(*gorm.DB) error     { ensureID(&t.ID); return nil }
func (c *Cart) BeforeCreate(*gorm.DB) error            { ensureID(&c.ID); return nil }
func (ci *CartItem) BeforeCreate(*gorm.DB) error       { ensureID(&ci.ID); return nil }
