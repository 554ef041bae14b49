package ingest_test

import (
	"errors"
	"testing"

	"github.com/yeisme/genovault/pkg/internal/ingest"
	"github.com/yeisme/genovault/pkg/internal/model"
)

const erz000011 = `<?xml version="1.0" encoding="UTF-8"?>
<ANALYSIS_SET>
  <ANALYSIS alias="uk10k_scoop5013826.vcf.gz-vcf_analysis-sc-20120330" center_name="SC" broker_name="EGA" accession="ERZ000011">
    <TITLE>UK10K</TITLE>
    <FILES>
      <FILE filename="UK10K_SCOOP5013826.vcf.gz" filetype="vcf" checksum_method="MD5" checksum="980aad09354c5bc984e23d2f74efdf3b"/>
      <FILE filename="ERZ000/ERZ000001/do131_Input_liver_none_mmuC57BL65_CRI01.sra.sorted.bam" filetype="bam" checksum_method="MD5" checksum="15191D68BDD5C1AD23C943C3DA3730C7"/>
    </FILES>
  </ANALYSIS>
</ANALYSIS_SET>
`

func TestParseAnalysisSet(t *testing.T) {
	docs, err := ingest.Parse([]byte(erz000011))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(docs) != 1 || docs[0].Accession != "ERZ000011" {
		t.Fatalf("unexpected documents %+v", docs)
	}

	files := docs[0].Files
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	if files[0].Name != "UK10K_SCOOP5013826.vcf.gz" || files[0].Type != model.FileVCF ||
		files[0].ChecksumMethod != model.ChecksumMD5 || files[0].Checksum != "980aad09354c5bc984e23d2f74efdf3b" {
		t.Errorf("first file = %+v", files[0])
	}

	if files[1].Type != model.FileBAM || files[1].Checksum != "15191d68bdd5c1ad23c943c3da3730c7" {
		t.Errorf("second file = %+v", files[1])
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"text before root": "/<?wrong xml version=\"1.0\" encoding=\"UTF-8\"?>\n<ANALYSIS_SET>\n" +
			"  <ANALYSIS accession=\"ERZ000011\">\n  </ANALYSIS>\n</ANALYSIS_SET>\n",
		"unknown instruction": "<?wrong version=\"1.0\"?><ANALYSIS_SET></ANALYSIS_SET>",
		"wrong root":          "<STUDY_SET></STUDY_SET>",
		"unclosed":            "<ANALYSIS_SET><ANALYSIS accession=\"ERZ1\">",
		"empty":               "   ",
		"missing checksum": `<ANALYSIS_SET><ANALYSIS accession="ERZ1"><FILES>
			<FILE filename="a.vcf" filetype="vcf"/></FILES></ANALYSIS></ANALYSIS_SET>`,
		"unknown checksum method": `<ANALYSIS_SET><ANALYSIS accession="ERZ1"><FILES>
			<FILE filename="a.vcf" filetype="vcf" checksum_method="CRC32" checksum="ab"/></FILES></ANALYSIS></ANALYSIS_SET>`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ingest.Parse([]byte(doc)); !errors.Is(err, ingest.ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestParseFileTypeAndChecksumMapping(t *testing.T) {
	doc := `<ANALYSIS_SET><ANALYSIS accession="ERZ2"><FILES>
		<FILE filename="a.tab" filetype="tab" checksum_method="SHA-256" checksum="aa"/>
		<FILE filename="b.cram" filetype="cram" checksum="bb"/>
		<FILE filename="c.txt" filetype="readme" checksum="cc"/>
	</FILES></ANALYSIS></ANALYSIS_SET>`

	docs, err := ingest.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := docs[0].Files
	want := []struct {
		typ    model.FileType
		method model.ChecksumMethod
	}{
		{model.FileTSV, model.ChecksumSHA256},
		{model.FileCRAM, model.ChecksumMD5},
		{model.FileOther, model.ChecksumMD5},
	}

	for i, w := range want {
		if got[i].Type != w.typ || got[i].ChecksumMethod != w.method {
			t.Errorf("file %d = %+v, want %v/%v", i, got[i], w.typ, w.method)
		}
	}
}
