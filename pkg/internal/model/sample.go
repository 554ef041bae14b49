package model

// Sample 样本.
type Sample struct {
	ID        uint    `gorm:"primaryKey"`
	Accession *string `gorm:"size:255;uniqueIndex:idx_samples_accession_version"`
	Version   *int    `gorm:"uniqueIndex:idx_samples_accession_version"`
	Name      string  `gorm:"size:255;not null"`
	Audit
}

func (Sample) TableName() string { return "samples" }

// SampleTaxonomy 样本与物种分类的关联.
type SampleTaxonomy struct {
	SampleID   uint `gorm:"primaryKey"`
	TaxonomyID uint `gorm:"primaryKey;index"`
	Position   int  `gorm:"not null;default:0"`
}

func (SampleTaxonomy) TableName() string { return "sample_taxonomies" }
