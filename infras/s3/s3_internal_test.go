package s3

import (
	"lankaride/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.lankaride.lk/"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"
	cfg.External.S3.BucketName = "lankaride"

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "public domain", url: "https://cdn.lankaride.lk/vehicles/a.jpg", expected: "vehicles/a.jpg"},
		{name: "api endpoint", url: "https://s3.example.com/lankaride/avatars/b.png", expected: "avatars/b.png"},
		{name: "foreign url", url: "https://elsewhere.com/x.jpg", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, objectKeyFromURL(cfg, tt.url))
		})
	}
}
