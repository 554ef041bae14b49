package model

import "slices"

// Technology 分析技术.
type Technology string

const (
	TechnologyGWAS            Technology = "GWAS"
	TechnologyExomeSequencing Technology = "EXOME_SEQUENCING"
	TechnologyGenotyping      Technology = "GENOTYPING"
	TechnologyArray           Technology = "ARRAY"
	TechnologyCuration        Technology = "CURATION"
)

// Technologies 所有合法的分析技术.
var Technologies = []Technology{
	TechnologyGWAS, TechnologyExomeSequencing, TechnologyGenotyping, TechnologyArray, TechnologyCuration,
}

func (t Technology) Valid() bool { return slices.Contains(Technologies, t) }

// AnalysisType 分析类型.
type AnalysisType string

const (
	AnalysisCaseControl   AnalysisType = "CASE_CONTROL"
	AnalysisControlSet    AnalysisType = "CONTROL_SET"
	AnalysisCaseSet       AnalysisType = "CASE_SET"
	AnalysisCollection    AnalysisType = "COLLECTION"
	AnalysisTumor         AnalysisType = "TUMOR"
	AnalysisMatchedNormal AnalysisType = "MATCHED_NORMAL"
)

var AnalysisTypes = []AnalysisType{
	AnalysisCaseControl, AnalysisControlSet, AnalysisCaseSet, AnalysisCollection, AnalysisTumor, AnalysisMatchedNormal,
}

func (t AnalysisType) Valid() bool { return slices.Contains(AnalysisTypes, t) }

// ReferenceSequenceType 参考序列类型.
type ReferenceSequenceType string

const (
	ReferenceAssembly      ReferenceSequenceType = "ASSEMBLY"
	ReferenceGene          ReferenceSequenceType = "GENE"
	ReferenceTranscriptome ReferenceSequenceType = "TRANSCRIPTOME"
)

var ReferenceSequenceTypes = []ReferenceSequenceType{ReferenceAssembly, ReferenceGene, ReferenceTranscriptome}

func (t ReferenceSequenceType) Valid() bool { return slices.Contains(ReferenceSequenceTypes, t) }

// FileType 数据文件类型.
type FileType string

const (
	FileTSV   FileType = "TSV"
	FileCSV   FileType = "CSV"
	FileVCF   FileType = "VCF"
	FileBAM   FileType = "BAM"
	FileCRAM  FileType = "CRAM"
	FileOther FileType = "OTHER"
)

var FileTypes = []FileType{FileTSV, FileCSV, FileVCF, FileBAM, FileCRAM, FileOther}

func (t FileType) Valid() bool { return slices.Contains(FileTypes, t) }

// ChecksumMethod 文件校验算法.
type ChecksumMethod string

const (
	ChecksumMD5    ChecksumMethod = "MD5"
	ChecksumSHA256 ChecksumMethod = "SHA256"
)

var ChecksumMethods = []ChecksumMethod{ChecksumMD5, ChecksumSHA256}

func (m ChecksumMethod) Valid() bool { return slices.Contains(ChecksumMethods, m) }

// WebResourceType 网络资源类型.
type WebResourceType string

const (
	WebResourceCenter WebResourceType = "CENTER_WEB"
	WebResourceStudy  WebResourceType = "STUDY_WEB"
)

var WebResourceTypes = []WebResourceType{WebResourceCenter, WebResourceStudy}

func (t WebResourceType) Valid() bool { return slices.Contains(WebResourceTypes, t) }
