package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/identity"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/relation"
	"github.com/yeisme/genovault/pkg/internal/types"
	"github.com/yeisme/genovault/pkg/queue"
)

const (
	entityFile        = "file"
	entityWebResource = "web resource"
)

// FileSortable 文件列表允许的排序字段.
var FileSortable = map[string]string{
	"id":   "files.id",
	"name": "files.name",
	"size": "files.size",
}

// WebResourceSortable 网络资源列表允许的排序字段.
var WebResourceSortable = map[string]string{
	"id":   "web_resources.id",
	"type": "web_resources.type",
}

type FileService struct {
	*Catalog
}

func NewFileService(ctx context.Context) *FileService {
	return &FileService{Catalog: FromContext(ctx)}
}

// Files 返回文件服务.
func (c *Catalog) Files() *FileService { return &FileService{Catalog: c} }

func (s *FileService) Create(ctx context.Context, req *types.FileCreateRequest) (*types.FileResponse, error) {
	row := model.File{Hash: req.Hash, Name: req.Name, Size: req.Size, Type: req.Type, ChecksumMethod: model.ChecksumMD5}
	if req.ChecksumMethod != nil {
		row.ChecksumMethod = *req.ChecksumMethod
	}

	av := req.AccessionVersionID.Value()
	if av != nil {
		row.Accession, row.Version = &av.Accession, &av.Version
	}

	err := s.inTx(ctx, entityFile, "create", func(tx *gorm.DB) error {
		row.ID = 0

		if err := s.rules.Evaluate(ctx, tx, relation.Change{Model: &model.File{}, Entity: entityFile, Identity: av}); err != nil {
			return err
		}

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create file: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := types.NewFileResponse(&row)

	return &out, nil
}

func (s *FileService) Get(ctx context.Context, raw string) (*types.FileResponse, error) {
	row, err := s.find(ctx, s.db, raw)
	if err != nil {
		return nil, err
	}

	out := types.NewFileResponse(row)

	return &out, nil
}

func (s *FileService) find(ctx context.Context, db *gorm.DB, raw string, scopes ...func(*gorm.DB) *gorm.DB) (*model.File, error) {
	ref, err := identity.ParseRef(raw)
	if err != nil {
		return nil, notFoundAs(entityFile, err)
	}

	return identity.Find[model.File](ctx, db, entityFile, ref, scopes...)
}

func (s *FileService) List(ctx context.Context, p query.Page) (*types.FileListResponse, error) {
	rows, info, err := page[model.File](ctx, s.db, p, "files.id")
	if err != nil {
		return nil, err
	}

	out := types.NewFileList(rows, &info)

	return &out, nil
}

func (s *FileService) Update(ctx context.Context, raw string, req *types.FileUpdateRequest) (*types.FileResponse, error) {
	var row *model.File

	av := req.AccessionVersionID.Value()

	err := s.inTx(ctx, entityFile, "update", func(tx *gorm.DB) error {
		var err error

		row, err = s.find(ctx, tx, raw, s.lockFor)
		if err != nil {
			return err
		}

		if err := s.rules.Evaluate(ctx, tx, relation.Change{Model: &model.File{}, Entity: entityFile, EntityID: row.ID, Identity: av}); err != nil {
			return err
		}

		u := map[string]any{}
		if av != nil {
			u["accession"], u["version"] = av.Accession, av.Version
		}

		if req.Hash != nil {
			u["hash"] = *req.Hash
		}

		if req.Name != nil {
			u["name"] = *req.Name
		}

		if req.Size != nil {
			u["size"] = *req.Size
		}

		if req.Type != nil {
			u["type"] = *req.Type
		}

		if req.ChecksumMethod != nil {
			u["checksum_method"] = *req.ChecksumMethod
		}

		if err := tx.Model(row).Updates(u).Error; err != nil {
			return fmt.Errorf("update file %d: %w", row.ID, err)
		}

		return tx.Take(row, row.ID).Error
	})
	if err != nil {
		return nil, err
	}

	out := types.NewFileResponse(row)

	return &out, nil
}

// ImportedFile 导入得到的文件描述.
type ImportedFile struct {
	Name           string
	Type           model.FileType
	ChecksumMethod model.ChecksumMethod
	Checksum       string
}

// Import 登记一个分析文档中的文件，并挂到该 accession 最新的分析上.
// 同一分析下 (hash, name) 相同的文件只登记一次；分析不存在时文件仍然登记，attached 为 false.
func (s *FileService) Import(ctx context.Context, accession string, files []ImportedFile) (created int, attached bool, err error) {
	err = s.inTx(ctx, entityFile, "import", func(tx *gorm.DB) error {
		created, attached = 0, false

		var (
			analysisID uint
			a          *model.Analysis
		)

		if accession != "" {
			var err error

			a, err = identity.ResolveLatest[model.Analysis](ctx, tx, entityAnalysis, accession)
			switch {
			case err == nil:
				analysisID = a.ID
			case !errs.IsNotFound(err):
				return err
			}
		}

		ids := make([]uint, 0, len(files))
		seen := make(map[[2]string]struct{}, len(files))

		for _, f := range files {
			key := [2]string{f.Checksum, f.Name}
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}

			row, isNew, err := s.upsertImported(tx, analysisID, f)
			if err != nil {
				return err
			}

			if isNew {
				created++
			}

			ids = append(ids, row.ID)
		}

		if analysisID == 0 {
			return nil
		}

		attached = true

		if err := attachFiles(tx, analysisID, relation.Normalize(ids)); err != nil {
			return err
		}

		return touch(tx, a)
	})

	return created, attached, err
}

func (s *FileService) upsertImported(tx *gorm.DB, analysisID uint, f ImportedFile) (*model.File, bool, error) {
	var row model.File

	q := tx.Model(&model.File{}).Where("files.hash = ? AND files.name = ?", f.Checksum, f.Name)
	if analysisID != 0 {
		q = q.Joins("JOIN analysis_files af ON af.file_id = files.id AND af.analysis_id = ?", analysisID)
	}

	err := q.Take(&row).Error
	if err == nil {
		return &row, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup file %s: %w", f.Name, err)
	}

	row = model.File{Hash: f.Checksum, Name: f.Name, Type: f.Type, ChecksumMethod: f.ChecksumMethod}
	if err := tx.Create(&row).Error; err != nil {
		return nil, false, fmt.Errorf("create file %s: %w", f.Name, err)
	}

	return &row, true, nil
}

type WebResourceService struct {
	*Catalog
}

func NewWebResourceService(ctx context.Context) *WebResourceService {
	return &WebResourceService{Catalog: FromContext(ctx)}
}

// WebResources 返回网络资源服务.
func (c *Catalog) WebResources() *WebResourceService { return &WebResourceService{Catalog: c} }

func (s *WebResourceService) Create(ctx context.Context, req *types.WebResourceCreateRequest) (*types.WebResourceResponse, error) {
	row := model.WebResource{Type: req.Type, ResourceURL: req.ResourceURL}

	err := s.inTx(ctx, "web_resource", "create", func(tx *gorm.DB) error {
		row.ID = 0

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create web resource: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := types.NewWebResourceResponse(&row)

	return &out, nil
}

func (s *WebResourceService) Get(ctx context.Context, raw string) (*types.WebResourceResponse, error) {
	row, err := findByID[model.WebResource](ctx, s.db, entityWebResource, raw)
	if err != nil {
		return nil, err
	}

	out := types.NewWebResourceResponse(row)

	return &out, nil
}

func (s *WebResourceService) List(ctx context.Context, p query.Page) (*types.WebResourceListResponse, error) {
	rows, info, err := page[model.WebResource](ctx, s.db, p, "web_resources.id")
	if err != nil {
		return nil, err
	}

	out := types.NewWebResourceList(rows, &info)

	return &out, nil
}

func (s *WebResourceService) Update(ctx context.Context, raw string, req *types.WebResourceUpdateRequest) (*types.WebResourceResponse, error) {
	var row *model.WebResource

	err := s.inTx(ctx, "web_resource", "update", func(tx *gorm.DB) error {
		var err error

		row, err = findByID[model.WebResource](ctx, tx, entityWebResource, raw)
		if err != nil {
			return err
		}

		u := map[string]any{}
		if req.Type != nil {
			u["type"] = *req.Type
		}

		if req.ResourceURL != nil {
			u["resource_url"] = *req.ResourceURL
		}

		if err := tx.Model(row).Updates(u).Error; err != nil {
			return fmt.Errorf("update web resource %d: %w", row.ID, err)
		}

		return tx.Take(row, row.ID).Error
	})
	if err != nil {
		return nil, err
	}

	out := types.NewWebResourceResponse(row)

	return &out, nil
}

// AnnounceIngest 发布一批导入的统计事件.
func (s *FileService) AnnounceIngest(ctx context.Context, p queue.IngestCompletedPayload) {
	s.emit(ctx, queue.TopicIngestCompleted, func(e *queue.Emitter, h ...queue.HeaderOption) error {
		return e.IngestCompleted(p, h...)
	})
}
