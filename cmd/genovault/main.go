// Package main 启动应用程序
package main

import "github.com/yeisme/genovault/pkg/cmd"

//	@title			GenoVault API
//	@version		1.0
//	@description	GenoVault 是基因组研究归档的元数据目录，管理研究、分析、样本、参考序列、分类、文件与网络资源.

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@contact.name	yeisme
//	@contact.email	yefun2004@gmail.com.

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
