package upload

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	for _, name := range []string{"scan.png", "REPORT.PDF", "clip.3gp", "notes.txt", "archive.tar.gz", "x.DocX"} {
		assert.True(t, Allowed(name), name)
	}
	for _, name := range []string{"run.exe", "noext", "script.sh", "png", "trailing."} {
		assert.False(t, Allowed(name), name)
	}
}

func TestSecureFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"résumé.pdf", "resume.pdf"},
		{"   .hidden.png", "hidden.png"},
		{"con.txt", "_con.txt"},
		{"LPT1", "_LPT1"},
		{`C:\Users\pat\scan.png`, "C_Users_pat_scan.png"},
		{`..\..\nul.txt`, "_nul.txt"},
		{"检查报告.png", "png"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SecureFilename(tc.in), tc.in)
	}
}

func TestEncodeUsesContentTypeHeader(t *testing.T) {
	resp := Encode("x-ray.jpg", "image/jpeg", []byte{0xff, 0xd8, 0xff})

	assert.True(t, resp.Success)
	assert.Equal(t, "x-ray.jpg", resp.Filename)
	assert.Equal(t, "image/jpeg", resp.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff}), resp.Data)
}

func TestEncodeSniffsMissingContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	assert.Equal(t, "image/png", Encode("scan.png", "", png).MimeType)
	assert.Equal(t, "image/png", Encode("scan.png", "application/octet-stream", png).MimeType)
	assert.Equal(t, "application/octet-stream", Encode("empty.txt", "", nil).MimeType)
}

func TestEncodeFallbackFilename(t *testing.T) {
	assert.Equal(t, "upload", Encode("诊断", "text/plain", []byte("x")).Filename)
}
