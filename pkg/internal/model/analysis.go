package model

// Analysis 分析.
type Analysis struct {
	ID          uint         `gorm:"primaryKey"`
	Accession   *string      `gorm:"size:255;uniqueIndex:idx_analyses_accession_version"`
	Version     *int         `gorm:"uniqueIndex:idx_analyses_accession_version"`
	Name        string       `gorm:"size:255;not null"`
	Description string       `gorm:"type:text"`
	StudyID     uint         `gorm:"not null;index"`
	Technology  Technology   `gorm:"size:32;not null;index"`
	Type        AnalysisType `gorm:"size:32;not null;index"`
	Platform    string       `gorm:"size:255;index"`
	Audit
}

func (Analysis) TableName() string { return "analyses" }

// AnalysisReferenceSequence 分析与参考序列的关联.
type AnalysisReferenceSequence struct {
	AnalysisID          uint `gorm:"primaryKey"`
	ReferenceSequenceID uint `gorm:"primaryKey;index"`
	// Position 保持输入顺序.
	Position int `gorm:"not null;default:0"`
}

func (AnalysisReferenceSequence) TableName() string { return "analysis_reference_sequences" }

// AnalysisFile 分析与数据文件的关联.
type AnalysisFile struct {
	AnalysisID uint `gorm:"primaryKey"`
	FileID     uint `gorm:"primaryKey;index"`
}

func (AnalysisFile) TableName() string { return "analysis_files" }
