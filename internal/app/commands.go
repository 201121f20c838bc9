package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jaeyoon222/PlanA/internal/domain"
	"github.com/jaeyoon222/PlanA/internal/payment"
	appvalidator "github.com/jaeyoon222/PlanA/internal/validator"
)

const helpText = `commands:
  register <email> <password> <name> [phone]
  login <email> <password>
  logout
  me
  zones
  open <zoneId> <date> <start> <end>   e.g. open 3 2026-09-02 09:00 12:00
  seats
  toggle <seatId>
  reserve
  pay
  reservations
  refresh
  quit`

func (app *Application) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer app.closeSession()

	// SIGCONT stands in for the browser's visibilitychange: one refresh
	// whenever the process returns to the foreground.
	wake := make(chan os.Signal, 1)
	signal.Notify(wake, syscall.SIGCONT)
	defer signal.Stop(wake)
	go func() {
		for range wake {
			if s := app.currentSession(); s != nil {
				s.view.NotifyVisible()
			}
		}
	}()

	app.logger.Info("seatwatch started", "api", app.config.BaseURL, "env", app.config.Env)
	fmt.Println(helpText)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if err := app.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func (app *Application) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Println(helpText)
		return nil
	case "register":
		return app.cmdRegister(ctx, args)
	case "login":
		return app.cmdLogin(ctx, args)
	case "logout":
		app.closeSession()
		return app.client.Logout(ctx)
	case "me":
		return app.cmdMe(ctx)
	case "zones":
		return app.cmdZones(ctx)
	case "open":
		return app.cmdOpen(ctx, args)
	case "seats":
		return app.cmdSeats()
	case "toggle":
		return app.cmdToggle(ctx, args)
	case "reserve":
		return app.cmdReserve(ctx)
	case "pay":
		return app.cmdPay(ctx)
	case "reservations":
		return app.cmdReservations(ctx)
	case "refresh":
		if app.session == nil {
			return fmt.Errorf("no open window")
		}
		app.session.view.NotifyVisible()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (app *Application) cmdRegister(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: register <email> <password> <name> [phone]")
	}

	form := domain.RegisterForm{Email: args[0], Password: args[1], Name: args[2]}
	if len(args) > 3 {
		form.Phone = args[3]
	}

	if err := app.validator.Struct(form); err != nil {
		return formatValidationErrors(err)
	}

	if err := app.client.Register(ctx, form); err != nil {
		return err
	}
	fmt.Println("registered, you can log in now")
	return nil
}

func (app *Application) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}

	if err := app.client.Login(ctx, domain.Credentials{Email: args[0], Password: args[1]}); err != nil {
		return err
	}
	fmt.Println("logged in as", app.tokens.UserID())
	return nil
}

func (app *Application) cmdMe(ctx context.Context) error {
	user, err := app.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s <%s> phone=%q\n", user.ID, user.Name, user.Email, user.Phone)
	return nil
}

func (app *Application) cmdZones(ctx context.Context) error {
	zones, err := app.client.Zones(ctx)
	if err != nil {
		return err
	}
	for _, z := range zones {
		fmt.Printf("%3d  %s  (%d seats)\n", z.ID, z.Name, z.SeatCount)
	}
	return nil
}

func (app *Application) cmdOpen(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: open <zoneId> <date> <start> <end>")
	}

	zoneID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || zoneID <= 0 {
		return fmt.Errorf("invalid zone id %q", args[0])
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", args[1]+" "+args[2], time.Local)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", args[1]+" "+args[3], time.Local)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}

	return app.openWindow(ctx, zoneID, start, end, domain.SeatFilters{})
}

func (app *Application) cmdSeats() error {
	if app.session == nil {
		return fmt.Errorf("no open window, use open first")
	}

	state := app.session.view.State()
	selected := domain.NewSeatIDSet(state.Selection...)

	rows := map[int][]domain.Seat{}
	var ys []int
	for _, seat := range state.Seats {
		if _, ok := rows[seat.PosY]; !ok {
			ys = append(ys, seat.PosY)
		}
		rows[seat.PosY] = append(rows[seat.PosY], seat)
	}
	sort.Ints(ys)

	for _, y := range ys {
		row := rows[y]
		sort.Slice(row, func(i, j int) bool { return row[i].PosX < row[j].PosX })
		for _, seat := range row {
			fmt.Printf("[%s %-4s] ", seatMark(seat, selected), seat.Name)
		}
		fmt.Println()
	}
	fmt.Println("selection:", state.Selection)
	return nil
}

func seatMark(seat domain.Seat, selected domain.SeatIDSet) string {
	switch {
	case selected.Has(seat.ID):
		return "*"
	case seat.Status == domain.SeatReserved:
		return "X"
	case seat.Status == domain.SeatHold:
		return "H"
	default:
		return " "
	}
}

func (app *Application) cmdToggle(ctx context.Context, args []string) error {
	if app.session == nil {
		return fmt.Errorf("no open window, use open first")
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: toggle <seatId>")
	}

	seatID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seat id %q", args[0])
	}

	return app.session.view.ToggleSeat(ctx, seatID)
}

func (app *Application) cmdReserve(ctx context.Context) error {
	if app.session == nil {
		return fmt.Errorf("no open window, use open first")
	}

	if err := app.session.view.SubmitReservation(ctx); err != nil {
		return err
	}
	fmt.Println("reservation confirmed")
	return nil
}

func (app *Application) cmdPay(ctx context.Context) error {
	s := app.session
	if s == nil {
		return fmt.Errorf("no open window, use open first")
	}

	state := s.view.State()
	selected := domain.NewSeatIDSet(state.Selection...)

	var seatNames []string
	for _, seat := range state.Seats {
		if selected.Has(seat.ID) {
			seatNames = append(seatNames, seat.Name)
		}
	}

	receipt, err := app.checkout.Pay(ctx, payment.Order{
		Viewer:    app.tokens.UserID(),
		ZoneName:  s.zone.Name,
		Window:    s.view.Window(),
		SeatIDs:   state.Selection,
		SeatNames: seatNames,
	})
	if err != nil {
		return err
	}

	fmt.Println("payment complete,", receipt.MerchantUID)
	s.view.NotifyVisible()
	return nil
}

func (app *Application) cmdReservations(ctx context.Context) error {
	reservations, err := app.client.MyReservations(ctx)
	if err != nil {
		return err
	}
	for _, r := range reservations {
		fmt.Printf("#%d  %s %s  %s ~ %s\n",
			r.ID, r.ZoneName, r.SeatName,
			r.StartTime.Format(domain.TimeLayout), r.EndTime.Format(domain.TimeLayout))
	}
	return nil
}

func formatValidationErrors(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	var b strings.Builder
	for i, fe := range vErrs {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fe.Field() + " " + appvalidator.ValidationMessage(fe))
	}
	return errors.New(b.String())
}
