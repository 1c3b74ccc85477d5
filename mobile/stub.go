//go:build !mobile

// 桌面端构建时的占位文件：mobile.go 与 embed.go 依赖复制到此目录的
// data/，只在 -tags mobile 下编译。
package mobile

// Dummy 保证包在桌面端构建时也有导出符号
func Dummy() {}
