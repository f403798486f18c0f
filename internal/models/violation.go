package models

import "time"

// Violation is a house-rule breach reported against a rental.
type Violation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RentalID    uint      `gorm:"not null;index" json:"rental_id"`
	Rental      *Rental   `gorm:"foreignKey:RentalID" json:"-"`
	Description string    `gorm:"type:text;not null" json:"description"`
	PhotoURL    *string   `json:"photo_url"`
	PhotoKey    string    `gorm:"size:255" json:"-"`
	UploadedBy  string    `gorm:"size:255;not null" json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ViolationCatalog lists the standard violation descriptions offered to
// administrators when filing a report.
var ViolationCatalog = []string{
	"Ditemukan alat suntik di tempat sampah",
	"Ditemukan kondom dalam jumlah banyak",
	"Kerusakan parah pada fasilitas",
	"Kebisingan berlebihan di malam hari",
	"Penyalahgunaan alkohol/narkoba",
	"Kekerasan atau ancaman kepada penghuni lain",
	"Merokok di area terlarang",
	"Tidak menjaga kebersihan unit",
	"Terpantau adanya tamu yang keluar masuk pada malam hari",
	"Menyewakan kembali unit yang disewa",
	"Agen memberlakukan sistem transit",
	"Agen lalai terhadap pelanggaran penyewa",
}
