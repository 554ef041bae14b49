package db

import "strings"

// sqliteBusyTimeoutMS 并发写入时等待锁的毫秒数.
const sqliteBusyTimeoutMS = "5000"

// appendDSNParams 向 file: DSN 追加成对的查询参数，已设置的参数保持不变.
// _pragma 可出现多次，按 pragma 名判重.
func appendDSNParams(dsn string, kv ...string) string {
	for i := 0; i+1 < len(kv); i += 2 {
		key, val := kv[i], kv[i+1]

		needle := key + "="
		if key == "_pragma" {
			name, _, _ := strings.Cut(val, "(")
			needle += name + "("
		}

		if strings.Contains(dsn, needle) {
			continue
		}

		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}

		dsn += sep + key + "=" + val
	}

	return dsn
}
