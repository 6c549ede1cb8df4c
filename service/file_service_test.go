package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListAndReadPDFs(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"b.pdf":     "%PDF-1.4 second",
		"a.PDF":     "%PDF-1.4 first",
		"notes.txt": "skip",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListPDFs(dir)
	if err != nil {
		t.Fatalf("ListPDFs: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "a.PDF" || filepath.Base(paths[1]) != "b.pdf" {
		t.Fatalf("paths = %v", paths)
	}

	files, err := ReadPDFFiles(paths)
	if err != nil {
		t.Fatalf("ReadPDFFiles: %v", err)
	}
	if files[0].Name != "a.PDF" || string(files[0].Data) != "%PDF-1.4 first" || string(files[1].Data) != "%PDF-1.4 second" {
		t.Errorf("files = %+v", files)
	}
}

func TestReadPDFFilesRejects(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(txt, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadPDFFiles([]string{txt}); err == nil {
		t.Error("expected error for a .pdf without a PDF header")
	}
	if _, err := ReadPDFFiles([]string{filepath.Join(dir, "missing.pdf")}); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ListPDFs(filepath.Join(dir, "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func uploadHeaders(t *testing.T, files map[string]string, order []string) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range order {
		part, err := w.CreateFormFile("pdf_docs", name)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte(files[name]))
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["pdf_docs"]
}

func TestReadUploadedPDFsChecksContent(t *testing.T) {
	files := map[string]string{
		"scan":       "%PDF-1.7\n...",
		"late.bin":   strings.Repeat(" ", 100) + "%PDF-1.4",
		"fake.pdf":   "just text",
		"buried.pdf": strings.Repeat("x", 2000) + "%PDF-1.4",
	}

	got, err := ReadUploadedPDFs(uploadHeaders(t, files, []string{"scan", "late.bin"}))
	if err != nil {
		t.Fatalf("ReadUploadedPDFs: %v", err)
	}
	if len(got) != 2 || got[0].Name != "scan" || got[1].Name != "late.bin" {
		t.Errorf("files = %+v", got)
	}

	for _, name := range []string{"fake.pdf", "buried.pdf"} {
		if _, err := ReadUploadedPDFs(uploadHeaders(t, files, []string{name})); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
