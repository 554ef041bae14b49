package model

// File 数据文件.
type File struct {
	ID             uint           `gorm:"primaryKey"`
	Accession      *string        `gorm:"size:255;uniqueIndex:idx_files_accession_version"`
	Version        *int           `gorm:"uniqueIndex:idx_files_accession_version"`
	Hash           string         `gorm:"size:128;not null;index"`
	Name           string         `gorm:"size:1024;not null"`
	Size           int64          `gorm:"not null;default:0"`
	Type           FileType       `gorm:"size:16;not null"`
	ChecksumMethod ChecksumMethod `gorm:"size:16;not null;default:MD5"`
	Audit
}

func (File) TableName() string { return "files" }

// WebResource 研究或中心的网页链接.
type WebResource struct {
	ID          uint            `gorm:"primaryKey"`
	Type        WebResourceType `gorm:"size:32;not null"`
	ResourceURL string          `gorm:"size:2048;not null"`
	Audit
}

func (WebResource) TableName() string { return "web_resources" }
