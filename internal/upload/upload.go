package upload

import (
	"encoding/base64"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/unicode/norm"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

const defaultMimeType = "application/octet-stream"

var allowedExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "webp": {}, "gif": {}, "bmp": {}, "tiff": {},
	"mp4": {}, "avi": {}, "mov": {}, "wmv": {}, "flv": {}, "webm": {}, "mkv": {}, "3gp": {},
	"zip": {}, "rar": {}, "7z": {}, "tar": {}, "gz": {},
	"pdf": {}, "doc": {}, "docx": {}, "txt": {},
}

var windowsDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Allowed 判断文件扩展名是否在白名单内（不区分大小写）。
func Allowed(filename string) bool {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[idx+1:])]
	return ok
}

// SecureFilename 把用户提供的文件名清理成只含 ASCII 字母数字与 "._-" 的安全名称。
//
// 规则沿用 werkzeug 的 secure_filename，但有两处有意的差异：
// "\" 无论运行在哪个平台都按路径分隔符处理，Windows 设备名（CON、NUL、COM1 等）
// 也总是加 "_" 前缀。werkzeug 只在 Windows 上做这两步，这里统一处理，
// 生成的名字在任何平台落盘都一致。
func SecureFilename(name string) string {
	decomposed := norm.NFKD.String(name)
	var ascii strings.Builder
	for _, r := range decomposed {
		if r < unicode.MaxASCII {
			ascii.WriteRune(r)
		}
	}

	cleaned := strings.NewReplacer("/", " ", "\\", " ").Replace(ascii.String())
	var b strings.Builder
	for i, field := range strings.Fields(cleaned) {
		if i > 0 {
			b.WriteByte('_')
		}
		for _, r := range field {
			if isSafeRune(r) {
				b.WriteRune(r)
			}
		}
	}
	result := strings.Trim(b.String(), "._")

	if result != "" {
		stem := strings.ToUpper(strings.SplitN(result, ".", 2)[0])
		if _, reserved := windowsDeviceNames[stem]; reserved {
			result = "_" + result
		}
	}
	return result
}

func isSafeRune(r rune) bool {
	return r == '.' || r == '_' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Encode 将上传内容编码为 base64，并确定 MIME 类型：优先采用请求头，其次按内容嗅探。
func Encode(filename, contentType string, data []byte) model.UploadResponse {
	safe := SecureFilename(filename)
	if safe == "" {
		safe = "upload"
	}
	return model.UploadResponse{
		Success:  true,
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: detectMimeType(contentType, data),
		Filename: safe,
	}
}

func detectMimeType(contentType string, data []byte) string {
	contentType = strings.TrimSpace(contentType)
	if contentType != "" && contentType != defaultMimeType {
		return contentType
	}
	if len(data) == 0 {
		return defaultMimeType
	}
	return mimetype.Detect(data).String()
}
