package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int      `yaml:"port"`
	DSN            string   `yaml:"dsn"` // MySQL DSN
	RedisURL       string   `yaml:"redis_url"`
	Env            string   `yaml:"env"` // "development" | "production"
	AllowedOrigins []string `yaml:"allowed_origins"`
	JWTSecret      string   `yaml:"jwt_secret"`
	PublicURL      string   `yaml:"public_url"` // site origin used in rating links
	BackupDir      string   `yaml:"backup_dir"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// SiteConfig is the admin-editable configuration stored in the options
// table (key "configs") as a JSON document.
type SiteConfig struct {
	Site    SiteOptions    `json:"site"`
	Contact ContactOptions `json:"contact"`
	Mail    MailOptions    `json:"mail"`
	Upload  UploadOptions  `json:"upload"`
	Backup  BackupOptions  `json:"backup"`
	S3      S3Options      `json:"s3"`
}

type SiteOptions struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

type ContactOptions struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	MapURL   string `json:"map_url"`
	Whatsapp string `json:"whatsapp"`
}

type MailOptions struct {
	Enable   bool   `json:"enable"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// UploadOptions configures signed direct uploads to the media host.
type UploadOptions struct {
	CloudName      string `json:"cloud_name"`
	APIKey         string `json:"api_key"`
	APISecret      string `json:"api_secret"`
	Folder         string `json:"folder"`
	AllowedFormats string `json:"allowed_formats"`
	MaxSizeMB      int    `json:"max_size_mb"`
}

type BackupOptions struct {
	Enable bool   `json:"enable"`
	Path   string `json:"path"`
}

type S3Options struct {
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	PathStyleAccess bool   `json:"path_style_access"`
}

// DefaultSiteConfig returns the config used before the admin saves one.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Site: SiteOptions{Title: "Lensframe Studio"},
		Mail: MailOptions{Port: 587},
		Upload: UploadOptions{
			Folder:         "studio",
			AllowedFormats: "jpg,jpeg,png,webp,mp4,mov",
			MaxSizeMB:      100,
		},
		Backup: BackupOptions{Path: "backups/{Y}/{m}/{filename}"},
	}
}
