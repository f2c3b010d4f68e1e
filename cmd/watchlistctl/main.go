// watchlistctl 是带外管理工具：建表、填充演示数据、创建或更新管理员账户
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := log.New(os.Stderr)
	r := &Runner{logger: logger}

	cmd := &cli.Command{
		Name:  "watchlistctl",
		Usage: "Watchlist 管理命令",
		Commands: []*cli.Command{
			initdbCommand(r),
			forgeCommand(r),
			adminCommand(r),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal(err)
	}
}

// initdbCommand 初始化数据库表结构
func initdbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "initdb",
		Usage: "创建数据库表结构",
		Flags: []cli.Flag{
			dsnFlag(),
			&cli.BoolFlag{
				Name:  "drop",
				Usage: "先删除已有表再重建",
			},
		},
		Action: r.InitDB,
	}
}

// forgeCommand 填充演示数据
func forgeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "forge",
		Usage:  "填充演示用户和电影数据",
		Flags:  []cli.Flag{dsnFlag()},
		Action: r.Forge,
	}
}

// adminCommand 创建或更新管理员账户
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "创建或更新唯一的管理员账户",
		Flags: []cli.Flag{
			dsnFlag(),
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Usage:    "登录用户名",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "登录密码，缺省时交互式输入",
			},
		},
		Action: r.Admin,
	}
}

// dsnFlag 数据库连接串，缺省时取环境变量配置
func dsnFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "dsn",
		Usage: "数据库连接串，覆盖环境变量配置",
	}
}
