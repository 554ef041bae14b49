package model

// Study 研究，目录中唯一带发布日期与弃用标记的实体.
type Study struct {
	ID          uint    `gorm:"primaryKey"`
	Accession   *string `gorm:"size:255;uniqueIndex:idx_studies_accession_version"`
	Version     *int    `gorm:"uniqueIndex:idx_studies_accession_version"`
	Name        string  `gorm:"size:255;not null;index"`
	Description string  `gorm:"type:text"`
	Center      string  `gorm:"size:255"`
	TaxonomyID  uint    `gorm:"not null;index"`
	ReleaseDate Date    `gorm:"not null;index"`
	Deprecated  bool    `gorm:"not null;default:false;index"`
	Browsable   bool    `gorm:"not null;default:false"`
	// Revision 每次链接变更递增，用于乐观并发控制.
	Revision int64 `gorm:"not null;default:0"`
	Audit
}

func (Study) TableName() string { return "studies" }

// StudyLink 研究之间的对称关联，每条边存两行.
type StudyLink struct {
	StudyID       uint `gorm:"primaryKey"`
	LinkedStudyID uint `gorm:"primaryKey;index"`
}

func (StudyLink) TableName() string { return "study_links" }
