package model

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ImageKind tags which variant an ImageRef holds.
type ImageKind uint8

const (
	ImageNone ImageKind = iota
	ImageRemote
	ImageEmbedded
)

// ErrInvalidDataURL is returned for data: URLs that are not base64 encoded images.
var ErrInvalidDataURL = errors.New("invalid image data url")

// ImageRef points at an image either by remote URL or by carrying the bytes
// inline. The zero value means no image.
type ImageRef struct {
	Kind     ImageKind
	URL      string
	MIMEType string
	Data     []byte
}

// RemoteImage references an image hosted elsewhere.
func RemoteImage(url string) ImageRef {
	url = strings.TrimSpace(url)
	if url == "" {
		return ImageRef{}
	}
	return ImageRef{Kind: ImageRemote, URL: url}
}

// EmbeddedImage carries the encoded image bytes inline.
func EmbeddedImage(mimeType string, data []byte) ImageRef {
	if len(data) == 0 {
		return ImageRef{}
	}
	return ImageRef{Kind: ImageEmbedded, MIMEType: mimeType, Data: data}
}

// ParseImageRef turns user input into an ImageRef. data: URLs become embedded
// images, any other non-empty value is treated as a remote URL.
func ParseImageRef(raw string) (ImageRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ImageRef{}, nil
	}
	if !strings.HasPrefix(strings.ToLower(raw), "data:") {
		return RemoteImage(raw), nil
	}

	meta, payload, found := strings.Cut(raw[len("data:"):], ",")
	if !found {
		return ImageRef{}, ErrInvalidDataURL
	}
	mimeType, encoding, _ := strings.Cut(meta, ";")
	if !strings.EqualFold(encoding, "base64") || !strings.HasPrefix(mimeType, "image/") {
		return ImageRef{}, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageRef{}, ErrInvalidDataURL
	}
	return EmbeddedImage(mimeType, data), nil
}

func (r ImageRef) IsZero() bool     { return r.Kind == ImageNone }
func (r ImageRef) IsRemote() bool   { return r.Kind == ImageRemote }
func (r ImageRef) IsEmbedded() bool { return r.Kind == ImageEmbedded }

// Src renders the reference as a value usable in an <img src> attribute.
func (r ImageRef) Src() string {
	switch r.Kind {
	case ImageRemote:
		return r.URL
	case ImageEmbedded:
		return "data:" + r.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
	}
	return ""
}

// Size is the number of inline payload bytes; remote images report zero.
func (r ImageRef) Size() int {
	if r.Kind != ImageEmbedded {
		return 0
	}
	return len(r.Data)
}

func (r ImageRef) Clone() ImageRef {
	clone := r
	if r.Data != nil {
		clone.Data = append([]byte(nil), r.Data...)
	}
	return clone
}

// MarshalText encodes the reference as its src value.
func (r ImageRef) MarshalText() ([]byte, error) {
	return []byte(r.Src()), nil
}

func (r *ImageRef) UnmarshalText(text []byte) error {
	parsed, err := ParseImageRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
