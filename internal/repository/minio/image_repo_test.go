package minio

import (
	"testing"

	"github.com/DRSN-tech/hardware-catalog/internal/cfg"
	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestURLFor_RoundTrip(t *testing.T) {
	repo := NewImageRepo(nil, &cfg.MinIOCfg{PublicURL: "http://localhost:9000", BucketName: "product-images"})

	keys := []string{
		"1718000000000_3f2a9c1e.png",
		"a",
		"with space.jpg",
		"ключ.webp",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			url := repo.URLFor(key)
			assert.Equal(t, "http://localhost:9000/product-images/"+key, url)
			assert.Equal(t, key, domain.ObjectKeyFromURL(url))
		})
	}
}
