package service

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"

	"github.com/tieubaoca/chatpdf/types"
	"github.com/tieubaoca/chatpdf/utils"
)

// MaxUploadSize bounds a single uploaded PDF.
const MaxUploadSize = 200 << 20

// PDF readers accept the header anywhere in the first 1024 bytes.
const pdfHeaderWindow = 1024

var pdfHeader = []byte("%PDF-")

func hasPDFHeader(data []byte) bool {
	if len(data) > pdfHeaderWindow {
		data = data[:pdfHeaderWindow]
	}
	return bytes.Contains(data, pdfHeader)
}

// ReadUploadedPDFs loads multipart uploads into memory, in the order they were sent.
// Files are recognised by their content, whatever their name.
func ReadUploadedPDFs(headers []*multipart.FileHeader) ([]types.PDFFile, error) {
	files := make([]types.PDFFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > MaxUploadSize {
			return nil, fmt.Errorf("file too large: %s", header.Filename)
		}
		src, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %v", header.Filename, err)
		}
		if !hasPDFHeader(data) {
			return nil, fmt.Errorf("not a PDF file: %s", header.Filename)
		}
		files = append(files, types.PDFFile{Name: header.Filename, Data: data})
	}
	return files, nil
}

// ReadPDFFiles loads the given paths in order.
func ReadPDFFiles(paths []string) ([]types.PDFFile, error) {
	files := make([]types.PDFFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %v", path, err)
		}
		if !hasPDFHeader(data) {
			return nil, fmt.Errorf("not a PDF file: %s", path)
		}
		files = append(files, types.PDFFile{Name: filepath.Base(path), Data: data})
	}
	return files, nil
}

// ListPDFs returns the PDF files directly inside directory, sorted by name.
func ListPDFs(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %v", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !utils.IsPDF(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(directory, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
