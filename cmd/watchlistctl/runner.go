package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ZF-u/watchlist/internal/config"
	"github.com/ZF-u/watchlist/internal/model"
	"github.com/ZF-u/watchlist/internal/repository"
	"github.com/ZF-u/watchlist/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gorm.io/gorm"
)

// Runner 承载各子命令的执行逻辑
type Runner struct {
	logger *log.Logger
}

// demoMovies 演示数据，来自最初的片单
var demoMovies = []model.Movie{
	{Title: "My Neighbor Totoro", Year: "1988"},
	{Title: "Dead Poets Society", Year: "1989"},
	{Title: "A Perfect World", Year: "1993"},
	{Title: "Leon", Year: "1994"},
	{Title: "Mahjong", Year: "1996"},
	{Title: "Swallowtail Butterfly", Year: "1996"},
	{Title: "King of Comedy", Year: "1999"},
	{Title: "Devils on the Doorstep", Year: "1999"},
	{Title: "WALL-E", Year: "2008"},
	{Title: "The Pork of Music", Year: "2012"},
}

// openDB 解析配置并建立数据库连接
func (r *Runner) openDB(cmd *cli.Command) (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		r.logger.Debug("未找到 .env 文件，使用系统环境变量")
	}

	dsn := cmd.String("dsn")
	if dsn == "" {
		dsn = config.Load().DatabaseURL
	}

	utils.InitCache()
	return repository.InitDB(dsn)
}

// InitDB 建表，--drop 时先清空
func (r *Runner) InitDB(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("drop") {
		r.logger.Warn("正在删除已有表")
		if err := repository.Drop(db); err != nil {
			return fmt.Errorf("删表失败: %w", err)
		}
	}

	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("建表失败: %w", err)
	}

	r.logger.Info("Initialized database.")
	return nil
}

// Forge 填充演示用户和电影
func (r *Runner) Forge(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}

	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("建表失败: %w", err)
	}

	user := &model.User{Name: "zfu", CreatedAt: time.Now()}
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("创建演示用户失败: %w", err)
	}

	repos := repository.NewRepositories(db)
	for _, m := range demoMovies {
		if _, err := repos.Movie.Create(m.Title, m.Year); err != nil {
			return fmt.Errorf("创建演示电影失败: %w", err)
		}
	}

	r.logger.Info("Done.")
	return nil
}

// Admin 创建或更新唯一的管理员账户
func (r *Runner) Admin(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB(cmd)
	if err != nil {
		return err
	}

	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("建表失败: %w", err)
	}

	username := cmd.String("username")
	password := cmd.String("password")
	if password == "" {
		if password, err = promptPassword(); err != nil {
			return err
		}
	}

	repos := repository.NewRepositories(db)
	owner, err := repos.User.FindOwner()
	if err != nil {
		return err
	}
	if owner != nil {
		r.logger.Info("Updating user...")
	} else {
		r.logger.Info("Creating user...")
	}

	if _, err := repos.User.UpsertAdmin(username, password); err != nil {
		return fmt.Errorf("写入管理员账户失败: %w", err)
	}

	r.logger.Info("Done.")
	return nil
}

// promptPassword 交互式读取密码并二次确认，输入不回显
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Repeat for confirmation: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("两次输入的密码不一致")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("密码不能为空")
	}

	return string(first), nil
}
