package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/yeremiapane/jobportal-app/config"
	"github.com/yeremiapane/jobportal-app/database"
	"github.com/yeremiapane/jobportal-app/router"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging."`

	Migrate    MigrateCmd    `cmd:"" help:"Create or update the database schema."`
	SeedRoles  SeedRolesCmd  `cmd:"" name:"seed-roles" help:"Create the default roles."`
	Sweep      SweepCmd      `cmd:"" help:"Close OPEN jobs whose expiry date has passed."`
	IssueToken IssueTokenCmd `cmd:"" name:"issue-token" help:"Print a token for an existing user."`
	CreateUser CreateUserCmd `cmd:"" name:"create-user" help:"Create a user with any role."`
}

type runContext struct {
	ctx context.Context
	out io.Writer
	cfg config.Config
	db  *gorm.DB
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(rc *runContext) error {
	if err := config.AutoMigrate(rc.db); err != nil {
		return err
	}
	fmt.Fprintln(rc.out, "schema up to date")
	return nil
}

type SeedRolesCmd struct{}

func (c *SeedRolesCmd) Run(rc *runContext) error {
	created, err := database.SeedRoles(rc.ctx, rc.db)
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.out, "%d roles created\n", created)
	return nil
}

type SweepCmd struct{}

func (c *SweepCmd) Run(rc *runContext) error {
	closed, err := services.NewExpirySweeper(rc.db).SweepOnce(rc.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.out, "%d jobs closed\n", closed)
	return nil
}

type IssueTokenCmd struct {
	User uint `help:"User id." required:""`
}

func (c *IssueTokenCmd) Run(rc *runContext) error {
	app, err := router.NewApp(rc.db, rc.cfg)
	if err != nil {
		return err
	}
	token, err := app.Auth.IssueFor(rc.ctx, c.User)
	if err != nil {
		return err
	}
	fmt.Fprintln(rc.out, token)
	return nil
}

type CreateUserCmd struct {
	Username string `help:"Username." required:""`
	Email    string `help:"Email address." required:""`
	Password string `help:"Password." required:""`
	Role     string `help:"Role name." default:"admin"`
}

func (c *CreateUserCmd) Run(rc *runContext) error {
	app, err := router.NewApp(rc.db, rc.cfg)
	if err != nil {
		return err
	}
	user, err := app.Users.Create(rc.ctx, services.CreateUserInput{
		Username: c.Username,
		Email:    c.Email,
		Password: c.Password,
		Role:     c.Role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.out, "user %d created with role %s\n", user.ID, user.Role.Name)
	return nil
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("portalctl"),
		kong.Description("Job portal maintenance commands."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	cfg := config.Load()
	level := cfg.LogLevel
	if cli.Verbose {
		level = "debug"
	}
	utils.InitLogger(level)

	db, err := config.InitDB(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rc := &runContext{ctx: context.Background(), out: os.Stdout, cfg: cfg, db: db}
	if err := kctx.Run(rc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
