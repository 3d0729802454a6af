package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/telephoto/internal/flagx"
	"github.com/dmitrijs2005/telephoto/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// use timex.Duration so JSON can specify them either as strings like
// "15m" or as integer nanoseconds.
type JsonConfig struct {
	DatabasePath string   `json:"database_path"`
	PrefsPath    string   `json:"prefs_path"`
	MediaRoots   []string `json:"media_roots"`

	StorageBackend string `json:"storage_backend"`

	TelegramToken  string `json:"telegram_token"`
	TelegramChatID string `json:"telegram_chat_id"`
	TelegramAPIURL string `json:"telegram_api_url"`

	S3Bucket          string `json:"s3_bucket"`
	S3Region          string `json:"s3_region"`
	S3Endpoint        string `json:"s3_endpoint"`
	S3AccessKeyID     string `json:"s3_access_key_id"`
	S3SecretAccessKey string `json:"s3_secret_access_key"`

	ImagePageSize int `json:"image_page_size"`
	VideoPageSize int `json:"video_page_size"`
	AlbumPageSize int `json:"album_page_size"`

	Workers    int `json:"workers"`
	MaxRetries int `json:"max_retries"`

	SyncInterval  timex.Duration `json:"sync_interval"`
	WatchDebounce timex.Duration `json:"watch_debounce"`

	NetworkClass string `json:"network_class"`
	OCRCommand   string `json:"ocr_command"`

	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; with no
// flag present nothing is loaded. Fields absent from the JSON keep their
// current value. Read or unmarshal errors panic; configuration is a
// startup-time concern.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.PrefsPath, jc.PrefsPath)
	if len(jc.MediaRoots) > 0 {
		cfg.MediaRoots = jc.MediaRoots
	}

	setString(&cfg.StorageBackend, jc.StorageBackend)

	setString(&cfg.TelegramToken, jc.TelegramToken)
	setString(&cfg.TelegramChatID, jc.TelegramChatID)
	setString(&cfg.TelegramAPIURL, jc.TelegramAPIURL)

	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKeyID, jc.S3AccessKeyID)
	setString(&cfg.S3SecretAccessKey, jc.S3SecretAccessKey)

	setInt(&cfg.ImagePageSize, jc.ImagePageSize)
	setInt(&cfg.VideoPageSize, jc.VideoPageSize)
	setInt(&cfg.AlbumPageSize, jc.AlbumPageSize)

	setInt(&cfg.Workers, jc.Workers)
	setInt(&cfg.MaxRetries, jc.MaxRetries)

	if jc.SyncInterval.Duration > 0 {
		cfg.SyncInterval = time.Duration(jc.SyncInterval.Duration)
	}
	if jc.WatchDebounce.Duration > 0 {
		cfg.WatchDebounce = time.Duration(jc.WatchDebounce.Duration)
	}

	setString(&cfg.NetworkClass, jc.NetworkClass)
	setString(&cfg.OCRCommand, jc.OCRCommand)

	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFile, jc.LogFile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
