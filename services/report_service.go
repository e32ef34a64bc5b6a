package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/utils"
)

const (
	dateLayout    = "2006-01-02"
	maxReportSpan = 366 * 24 * time.Hour
)

type StatsGateway interface {
	DailyStats(ctx context.Context, date string) (*entity.DailyStats, error)
	TopSelling(ctx context.Context, limit int) ([]entity.TopProduct, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)
	Revenue(ctx context.Context, startDate, endDate string) (int64, error)
}

type DayStat struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Revenue int64  `json:"revenue"`
	Orders  int64  `json:"orders"`
	Error   string `json:"error,omitempty"`
}

type Dashboard struct {
	Today       DayStat             `json:"today"`
	LastWeek    []DayStat           `json:"lastWeek"`
	BusyTables  int                 `json:"busyTables"`
	TotalTables int                 `json:"totalTables"`
	TopProducts []entity.TopProduct `json:"topProducts"`
	Errors      map[string]string   `json:"errors,omitempty"`
}

type RevenueReport struct {
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Rows      []DayStat `json:"rows"`
	Revenue   int64     `json:"revenue"`
	Orders    int64     `json:"orders"`
	Average   int64     `json:"average"`
	// GatewayRevenue is the gateway's own figure; nil when it could not be fetched.
	GatewayRevenue *int64 `json:"gatewayRevenue"`
	Display        string `json:"display"`
}

type ReportService struct {
	gw      StatsGateway
	catalog *CatalogService
	now     func() time.Time
}

func NewReportService(gw StatsGateway, catalog *CatalogService) *ReportService {
	return &ReportService{gw: gw, catalog: catalog, now: time.Now}
}

func dayLabel(t time.Time) string { return t.Format("02/01") }

// Dashboard loads the last seven days of stats, the table board and the top
// sellers concurrently. A failing piece is reported in Errors and leaves the
// rest intact.
func (s *ReportService) Dashboard(ctx context.Context, topLimit int) Dashboard {
	if topLimit <= 0 {
		topLimit = 5
	}
	today := truncateDay(s.now())
	d := Dashboard{LastWeek: make([]DayStat, 7), Errors: map[string]string{}}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	fail := func(key string, err error) {
		mu.Lock()
		d.Errors[key] = UserMessage(err)
		mu.Unlock()
	}

	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i-6)
		d.LastWeek[i] = DayStat{Date: day.Format(dateLayout), Label: dayLabel(day)}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := s.gw.DailyStats(ctx, d.LastWeek[i].Date)
			if err != nil {
				d.LastWeek[i].Error = UserMessage(err)
				fail("dailyStats", err)
				return
			}
			d.LastWeek[i].Revenue = st.TotalAmount
			d.LastWeek[i].Orders = st.OrderCount
		}(i)
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		tables, err := s.catalog.RefreshTables(ctx)
		if err != nil {
			fail("tables", err)
			tables = s.catalog.Tables()
		}
		sum := Summarize(tables)
		mu.Lock()
		d.BusyTables, d.TotalTables = sum.Busy, len(tables)
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		top, err := s.gw.TopSelling(ctx, topLimit)
		if err != nil {
			fail("topProducts", err)
			top = []entity.TopProduct{}
		}
		mu.Lock()
		d.TopProducts = top
		mu.Unlock()
	}()
	wg.Wait()

	d.Today = d.LastWeek[6]
	if len(d.Errors) == 0 {
		d.Errors = nil
	}
	return d
}

// PresetRange returns the inclusive date range for "today", "week" (Monday
// to today) or "month" (1st to today).
func PresetRange(preset string, now time.Time) (start, end time.Time) {
	end = truncateDay(now)
	switch strings.ToLower(preset) {
	case "week":
		offset := (int(end.Weekday()) + 6) % 7
		return end.AddDate(0, 0, -offset), end
	case "month":
		return time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location()), end
	default:
		return end, end
	}
}

// Revenue builds the report for closed orders whose date falls within
// [startDate, endDate], both inclusive. Either date may be empty when preset
// is given.
func (s *ReportService) Revenue(ctx context.Context, startDate, endDate, preset string) (*RevenueReport, error) {
	start, end, err := s.reportRange(startDate, endDate, preset)
	if err != nil {
		return nil, err
	}

	orders, err := s.gw.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	rep := BuildRevenueReport(orders, start, end)

	if amount, err := s.gw.Revenue(ctx, rep.StartDate, rep.EndDate); err == nil {
		rep.GatewayRevenue = &amount
		rep.Display = utils.FormatVND(amount)
	}
	return rep, nil
}

func (s *ReportService) reportRange(startDate, endDate, preset string) (time.Time, time.Time, error) {
	if strings.TrimSpace(startDate) == "" && strings.TrimSpace(endDate) == "" {
		start, end := PresetRange(preset, s.now())
		return start, end, nil
	}
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, invalid(InvalidField, "startDate", "both start and end dates are required")
	}
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(startDate), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, invalid(InvalidField, "startDate", "start date must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(endDate), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, invalid(InvalidField, "endDate", "end date must be YYYY-MM-DD")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, invalid(InvalidField, "startDate", "start date is after end date")
	}
	if end.Sub(start) > maxReportSpan {
		return time.Time{}, time.Time{}, invalid(InvalidField, "endDate", "report range is limited to one year")
	}
	return start, end, nil
}

// BuildRevenueReport groups CLOSE orders per day. Every day of the range has
// a row, zero-filled when there were no sales.
func BuildRevenueReport(orders []entity.Order, start, end time.Time) *RevenueReport {
	start, end = truncateDay(start), truncateDay(end)
	last := end.AddDate(0, 0, 1)

	perDay := map[string]*DayStat{}
	rep := &RevenueReport{StartDate: start.Format(dateLayout), EndDate: end.Format(dateLayout)}
	for day := start; day.Before(last); day = day.AddDate(0, 0, 1) {
		rep.Rows = append(rep.Rows, DayStat{Date: day.Format(dateLayout), Label: dayLabel(day)})
	}
	for i := range rep.Rows {
		perDay[rep.Rows[i].Date] = &rep.Rows[i]
	}

	for _, o := range orders {
		if o.Status != entity.OrderClose || o.OrderDate.IsZero() {
			continue
		}
		at := o.OrderDate.In(start.Location())
		if at.Before(start) || !at.Before(last) {
			continue
		}
		row := perDay[at.Format(dateLayout)]
		row.Revenue += o.TotalAmount
		row.Orders++
		rep.Revenue += o.TotalAmount
		rep.Orders++
	}
	if rep.Orders > 0 {
		rep.Average = rep.Revenue / rep.Orders
	}
	rep.Display = utils.FormatVND(rep.Revenue)
	return rep
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
