package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"stock-system/internal/alerts"
	"stock-system/internal/config"
	"stock-system/internal/connections/database"
	"stock-system/internal/connections/rabbitmq"
	"stock-system/internal/domain"
	"stock-system/internal/events"
	"stock-system/internal/logger"
	"stock-system/internal/repository"
	"stock-system/internal/seed"
	"stock-system/internal/service"
)

func main() {
	mode := flag.String("mode", "", "seed | demo | alert-listener | check")
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	prefetch := flag.Int("prefetch", 1, "alert-listener: RabbitMQ prefetch")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	lg, err := logger.New(cfg.App.Name, cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "seed":
		os.Exit(runSeed(ctx, cfg, lg))
	case "demo":
		os.Exit(runDemo(ctx, cfg, lg))
	case "alert-listener":
		os.Exit(runAlertListener(ctx, cfg, lg, *prefetch))
	case "check":
		os.Exit(runCheck(ctx, cfg, lg))
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: seed | demo | alert-listener | check")
		os.Exit(2)
	}
}

func runSeed(ctx context.Context, cfg config.Config, lg *zap.Logger) int {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Error("database connect failed", zap.Error(err))
		return 1
	}
	defer db.Close()

	repo := repository.NewPGRepository(db)
	if err := seed.Run(ctx, repo); err != nil {
		lg.Error("seed failed", zap.Error(err))
		return 1
	}
	lg.Info("seed completed")
	return 0
}

// runDemo walks seeded data through the full stack: place an order, move
// it to PAID, print the bill, then remove vodka below its threshold so an
// alert is published for the alert-listener to pick up.
func runDemo(ctx context.Context, cfg config.Config, lg *zap.Logger) int {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Error("database connect failed", zap.Error(err))
		return 1
	}
	defer db.Close()

	mq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		lg.Error("rabbitmq connect failed", zap.Error(err))
		return 1
	}
	defer mq.Close()
	if err := mq.DeclareAll(); err != nil {
		lg.Error("rabbitmq declare failed", zap.Error(err))
		return 1
	}

	repo := repository.NewPGRepository(db)
	svc := service.New(repo, events.NewPublisher(mq, lg), lg)

	if err := runDemoFlow(ctx, repo, svc); err != nil {
		lg.Error("demo failed", zap.Error(err))
		return 1
	}
	return 0
}

func runDemoFlow(ctx context.Context, repo *repository.Repository, svc *service.Service) error {
	managers, err := repo.Staff.FindByRole(ctx, domain.RoleManager)
	if err != nil {
		return err
	}
	if len(managers) == 0 {
		return fmt.Errorf("no manager on the roster, run --mode seed first")
	}
	boss := managers[0]

	barMenu, err := repo.Menu.FindByName(ctx, "Bar Menu")
	if err != nil {
		return err
	}
	if barMenu == nil {
		return fmt.Errorf("bar menu not found, run --mode seed first")
	}
	gt := barMenu.FindItemByName("Gin & Tonic")
	if gt == nil {
		return fmt.Errorf("gin & tonic is off the menu")
	}

	table := 4
	order, err := svc.Order.PlaceOrder(ctx, boss.ID(), &table, []service.OrderItemInput{
		{MenuItemID: string(gt.ID()), Quantity: 2},
	})
	if err != nil {
		return err
	}
	for _, status := range []domain.OrderStatus{
		domain.OrderInProgress, domain.OrderReady, domain.OrderServed, domain.OrderPaid,
	} {
		if order, err = svc.Order.UpdateOrderStatus(ctx, order.ID(), status); err != nil {
			return err
		}
	}
	bill, err := svc.Order.GetBill(ctx, order.ID())
	if err != nil {
		return err
	}
	fmt.Print(bill.FormatAsText())

	vodka, err := repo.Stock.FindByCategory(ctx, domain.CategorySpirits)
	if err != nil {
		return err
	}
	for _, item := range vodka {
		if item.Name() != "Absolut Vodka" {
			continue
		}
		// drop below the seeded 5 liter threshold
		_, err = svc.Stock.RemoveStock(ctx, boss, item.ID(), domain.MustQuantity(6, domain.UnitLiters))
		return err
	}
	return fmt.Errorf("absolut vodka not in stock, run --mode seed first")
}

func runAlertListener(ctx context.Context, cfg config.Config, lg *zap.Logger, prefetch int) int {
	mq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		lg.Error("rabbitmq connect failed", zap.Error(err))
		return 1
	}
	defer mq.Close()

	if err := mq.DeclareAll(); err != nil {
		lg.Error("rabbitmq declare failed", zap.Error(err))
		return 1
	}

	lg.Info("alert listener started", zap.String("queue", rabbitmq.AlertQueue))
	if err := alerts.NewListener(mq, lg, prefetch).Run(ctx); err != nil {
		lg.Error("alert listener stopped", zap.Error(err))
		return 1
	}
	return 0
}

// runCheck verifies connectivity to Postgres and RabbitMQ and exits.
func runCheck(ctx context.Context, cfg config.Config, lg *zap.Logger) int {
	code := 0

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Error("postgres unreachable", zap.Error(err))
		code = 1
	} else {
		lg.Info("postgres ok")
		db.Close()
	}

	mq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		lg.Error("rabbitmq unreachable", zap.Error(err))
		code = 1
	} else {
		if err := mq.Ping(); err != nil {
			lg.Error("rabbitmq ping failed", zap.Error(err))
			code = 1
		} else {
			lg.Info("rabbitmq ok")
		}
		mq.Close()
	}
	return code
}
