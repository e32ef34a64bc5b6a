package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/ADat1304/Project-cafe/entity"

	"github.com/skip2/go-qrcode"
)

type TableGateway interface {
	UpdateTableStatus(ctx context.Context, number string, status entity.TableStatus) (*entity.Table, error)
}

type TableView struct {
	entity.Table
	StatusLabel string `json:"statusLabel"`
}

type TableList struct {
	Tables []TableView `json:"tables"`
	Busy   int         `json:"busy"`
	Free   int         `json:"free"`
}

// TableService lists tables through the catalog and renders QR codes that
// point guests at a table's ordering page.
type TableService struct {
	gw       TableGateway
	catalog  *CatalogService
	orderURL string
	qrSize   int
}

func NewTableService(gw TableGateway, catalog *CatalogService, publicOrderURL string) *TableService {
	return &TableService{gw: gw, catalog: catalog, orderURL: strings.TrimRight(publicOrderURL, "/"), qrSize: 256}
}

func Summarize(tables []entity.Table) TableList {
	out := TableList{Tables: make([]TableView, 0, len(tables))}
	for _, t := range tables {
		out.Tables = append(out.Tables, TableView{Table: t, StatusLabel: t.Status.Label()})
		switch t.Status {
		case entity.TableBusy:
			out.Busy++
		case entity.TableFree:
			out.Free++
		}
	}
	return out
}

func (s *TableService) List(ctx context.Context) (TableList, error) {
	tables, err := s.catalog.RefreshTables(ctx)
	if err != nil {
		return TableList{}, err
	}
	return Summarize(tables), nil
}

func ParseTableStatus(raw string) (entity.TableStatus, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	switch raw {
	case "FREE":
		return entity.TableFree, nil
	case "BUSY":
		return entity.TableBusy, nil
	case "RESERVED":
		return entity.TableReserved, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, invalid(InvalidField, "status", "unknown table status "+raw)
	}
	return entity.TableStatus(n), nil
}

func (s *TableService) UpdateStatus(ctx context.Context, number, rawStatus string) (*entity.Table, error) {
	status, err := ParseTableStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	t, err := s.gw.UpdateTableStatus(ctx, number, status)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.RefreshTables(ctx); err != nil {
		log.Printf("refresh tables after table %s update: %v", number, err)
	}
	return t, nil
}

func (s *TableService) OrderLink(number string) string {
	return fmt.Sprintf("%s/order?table=%s", s.orderURL, url.QueryEscape(number))
}

// QRCode returns a PNG for the table's ordering link.
func (s *TableService) QRCode(number string) ([]byte, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, invalid(InvalidField, "tableNumber", "table number is required")
	}
	if len(s.catalog.Tables()) > 0 {
		if _, ok := s.catalog.LookupTable(number); !ok {
			return nil, invalid(InvalidField, "tableNumber", "table "+number+" does not exist")
		}
	}
	return qrcode.Encode(s.OrderLink(number), qrcode.Medium, s.qrSize)
}
