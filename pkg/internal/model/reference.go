package model

// ReferenceSequence 参考序列（组装、基因或转录组）.
type ReferenceSequence struct {
	ID         uint                  `gorm:"primaryKey"`
	Name       string                `gorm:"size:255;not null;index"`
	Patch      string                `gorm:"size:64;index"`
	Accessions StringList            `gorm:"type:text"`
	Type       ReferenceSequenceType `gorm:"size:32;not null;index"`
	Audit
}

func (ReferenceSequence) TableName() string { return "reference_sequences" }

// Taxonomy 物种分类节点，TaxonomyID 为 NCBI 分类号.
type Taxonomy struct {
	ID         uint   `gorm:"primaryKey"`
	TaxonomyID int64  `gorm:"not null;uniqueIndex"`
	Name       string `gorm:"size:255;not null;index"`
	Audit
}

func (Taxonomy) TableName() string { return "taxonomies" }

// TaxonomyAncestor 分类的直接祖先边，闭包在查询时计算.
type TaxonomyAncestor struct {
	ChildID    uint `gorm:"primaryKey"`
	AncestorID uint `gorm:"primaryKey;index"`
}

func (TaxonomyAncestor) TableName() string { return "taxonomy_ancestors" }
