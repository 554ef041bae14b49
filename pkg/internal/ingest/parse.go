package ingest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/service"
)

// ErrMalformed XML 文档无法解析.
var ErrMalformed = errors.New("malformed analysis document")

// Document 一个 ANALYSIS 元素中与目录相关的内容.
type Document struct {
	Accession string
	Files     []service.ImportedFile
}

type analysisSet struct {
	XMLName  xml.Name      `xml:"ANALYSIS_SET"`
	Analyses []analysisXML `xml:"ANALYSIS"`
}

type analysisXML struct {
	Accession string    `xml:"accession,attr"`
	Files     []fileXML `xml:"FILES>FILE"`
}

type fileXML struct {
	Filename       string `xml:"filename,attr"`
	Filetype       string `xml:"filetype,attr"`
	ChecksumMethod string `xml:"checksum_method,attr"`
	Checksum       string `xml:"checksum,attr"`
}

// Parse 解析 ENA ANALYSIS_SET 文档. 根元素之前出现非空白文本、根元素名不符
// 或文件缺少 filename / checksum 都视为格式错误.
func Parse(data []byte) ([]Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no root element", ErrMalformed)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("%w: text before root element", ErrMalformed)
			}
		case xml.ProcInst:
			if t.Target != "xml" {
				return nil, fmt.Errorf("%w: unexpected processing instruction %q", ErrMalformed, t.Target)
			}
		case xml.StartElement:
			var set analysisSet
			if err := dec.DecodeElement(&set, &t); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}

			return convert(set)
		}
	}
}

func convert(set analysisSet) ([]Document, error) {
	out := make([]Document, 0, len(set.Analyses))

	for _, a := range set.Analyses {
		doc := Document{Accession: strings.TrimSpace(a.Accession)}

		for _, f := range a.Files {
			if f.Filename == "" || f.Checksum == "" {
				return nil, fmt.Errorf("%w: file in analysis %q lacks filename or checksum", ErrMalformed, doc.Accession)
			}

			method, err := checksumMethod(f.ChecksumMethod)
			if err != nil {
				return nil, err
			}

			doc.Files = append(doc.Files, service.ImportedFile{
				Name:           f.Filename,
				Type:           fileType(f.Filetype),
				ChecksumMethod: method,
				Checksum:       strings.ToLower(f.Checksum),
			})
		}

		out = append(out, doc)
	}

	return out, nil
}

// fileType 把 ENA 的 filetype 映射为目录文件类型，未知类型归为 OTHER.
func fileType(s string) model.FileType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vcf", "vcf_aggregate":
		return model.FileVCF
	case "bam":
		return model.FileBAM
	case "cram":
		return model.FileCRAM
	case "tab", "tsv":
		return model.FileTSV
	case "csv":
		return model.FileCSV
	default:
		return model.FileOther
	}
}

func checksumMethod(s string) (model.ChecksumMethod, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "", "MD5":
		return model.ChecksumMD5, nil
	case "SHA256":
		return model.ChecksumSHA256, nil
	default:
		return "", fmt.Errorf("%w: unsupported checksum method %q", ErrMalformed, s)
	}
}
