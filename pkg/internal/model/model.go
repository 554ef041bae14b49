// Package model 定义目录的持久化模型.
// 关联关系全部使用显式的关联表模型，写入时不依赖 GORM 的关联自动保存.
package model

import "gorm.io/gorm"

// All 返回需要迁移的全部模型.
func All() []any {
	return []any{
		&Taxonomy{}, &TaxonomyAncestor{},
		&ReferenceSequence{},
		&Study{}, &StudyLink{},
		&Analysis{}, &AnalysisReferenceSequence{}, &AnalysisFile{},
		&Sample{}, &SampleTaxonomy{},
		&File{}, &WebResource{},
	}
}

// AutoMigrate 建表或补齐列与索引.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
