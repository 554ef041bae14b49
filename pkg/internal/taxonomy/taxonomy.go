// Package taxonomy 计算物种分类的祖先闭包.
// 遍历使用显式队列与已访问集合，分类图中的环不会导致死循环.
package taxonomy

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/model"
)

// Descendants 返回 roots 以及所有以 roots 中任一节点为（传递）祖先的分类主键.
// 结果按发现顺序排列，roots 在前.
func Descendants(ctx context.Context, db *gorm.DB, roots []uint) ([]uint, error) {
	return walk(ctx, db, roots, "ancestor_id", "child_id")
}

// Ancestors 返回 roots 以及它们的全部祖先.
func Ancestors(ctx context.Context, db *gorm.DB, roots []uint) ([]uint, error) {
	return walk(ctx, db, roots, "child_id", "ancestor_id")
}

func walk(ctx context.Context, db *gorm.DB, roots []uint, from, to string) ([]uint, error) {
	visited := make(map[uint]struct{}, len(roots))
	out := make([]uint, 0, len(roots))

	frontier := make([]uint, 0, len(roots))
	for _, r := range roots {
		if _, ok := visited[r]; ok {
			continue
		}

		visited[r] = struct{}{}
		out = append(out, r)
		frontier = append(frontier, r)
	}

	for len(frontier) > 0 {
		var next []uint

		err := db.WithContext(ctx).
			Model(&model.TaxonomyAncestor{}).
			Where(from+" IN ?", frontier).
			Order(to).
			Pluck(to, &next).Error
		if err != nil {
			return nil, fmt.Errorf("walk taxonomy graph: %w", err)
		}

		frontier = frontier[:0]

		for _, id := range next {
			if _, ok := visited[id]; ok {
				continue
			}

			visited[id] = struct{}{}
			out = append(out, id)
			frontier = append(frontier, id)
		}
	}

	return out, nil
}

// IDsByTaxonomyID 把 NCBI 分类号映射为分类主键.
func IDsByTaxonomyID(ctx context.Context, db *gorm.DB, taxonomyID int64) ([]uint, error) {
	var ids []uint

	err := db.WithContext(ctx).Model(&model.Taxonomy{}).Where("taxonomy_id = ?", taxonomyID).Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("lookup taxonomy %d: %w", taxonomyID, err)
	}

	return ids, nil
}

// IDsByName 按名称（忽略大小写）查找分类主键.
func IDsByName(ctx context.Context, db *gorm.DB, name string) ([]uint, error) {
	var ids []uint

	err := db.WithContext(ctx).Model(&model.Taxonomy{}).Where("LOWER(name) = LOWER(?)", name).Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("lookup taxonomy %q: %w", name, err)
	}

	return ids, nil
}
