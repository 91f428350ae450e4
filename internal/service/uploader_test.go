package service

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1 << 20))

	return req.MultipartForm.File["file"][0]
}

func TestValidateAttachmentTypeAcceptsPlainText(t *testing.T) {
	file := buildFileHeader(t, "notes.txt", []byte("my submission notes"))
	require.NoError(t, validateAttachmentType(file))
}

func TestValidateAttachmentTypeAcceptsPDF(t *testing.T) {
	file := buildFileHeader(t, "paper.pdf", []byte("%PDF-1.4\n%fake body"))
	require.NoError(t, validateAttachmentType(file))
}

func TestValidateAttachmentTypeRejectsBinaries(t *testing.T) {
	// ELF magic bytes, i.e. an executable masquerading as an attachment.
	file := buildFileHeader(t, "homework.txt", []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00})
	err := validateAttachmentType(file)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported file type")
}

func TestSanitizeStripsMarkup(t *testing.T) {
	require.Equal(t, "hello", sanitize("<script>alert(1)</script>hello"))
	require.Equal(t, "plain text", sanitize("plain text"))
}
