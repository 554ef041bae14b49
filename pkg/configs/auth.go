package configs

import "github.com/spf13/viper"

const DefaultRoleHeader = "X-Role"

// AuthConfig 写操作的身份与角色. 读接口始终公开；
// 身份来自 oauth2-proxy 注入的 X-Auth-Request-Email，角色来自 RoleHeader.
// 关闭时所有请求都按 admin 处理，适合单机部署与测试.
type AuthConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	SkipPaths     []string `mapstructure:"skip_paths"`
	RoleHeader    string   `mapstructure:"role_header"`
	DevAllowQuery bool     `mapstructure:"dev_allow_query"` // 允许 ?user= 代替身份头，仅用于本地调试
}

// Header 角色请求头，未配置时为 X-Role.
func (c AuthConfig) Header() string {
	if c.RoleHeader == "" {
		return DefaultRoleHeader
	}

	return c.RoleHeader
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.role_header", DefaultRoleHeader)
	v.SetDefault("auth.dev_allow_query", false)
	v.SetDefault("auth.skip_paths", []string{"/metrics", "/api/v1/health", "/swagger"})
}
