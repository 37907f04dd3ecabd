package config

import "evently_backend/internal/services/dto"

var MediaFileConfig = dto.FileConfigMedia{
	MaxSize: 100 * 1024 * 1024, // 100MB
	AllowedTypes: []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"video/mp4", "video/quicktime",
		"application/pdf",
	},
	MaxBatch: 20,
}
