package server

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/dataset"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/pipeline"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) load(c *fiber.Ctx) (*dataset.RecordSet, error) {
	return s.cfg.Data.Load(c.UserContext(), s.cfg.Path)
}

// aggregate runs the pipeline for the request's filter selection.
func (s *Server) aggregate(c *fiber.Ctx) (model.FilterSelection, model.DashboardView, error) {
	rs, err := s.load(c)
	if err != nil {
		return model.FilterSelection{}, model.DashboardView{}, err
	}
	sel := s.selection(c, rs.Options())
	return sel, pipeline.Aggregate(rs.Records(), sel), nil
}

// selection reads repeated or comma separated segment, category and region
// parameters. A missing parameter falls back to the configured default,
// and an empty one selects nothing.
func (s *Server) selection(c *fiber.Ctx, opts model.FilterOptions) model.FilterSelection {
	args := c.Context().QueryArgs()
	sel := opts.SelectAll()

	for _, d := range model.Dimensions {
		key := string(d)
		if !args.Has(key) {
			if def := s.cfg.Defaults.Set(d); def != nil {
				sel = sel.With(d, def)
			}
			continue
		}

		var values []string
		for _, raw := range args.PeekMulti(key) {
			for _, v := range strings.Split(string(raw), ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
		}
		sel = sel.With(d, model.NewValueSet(values...))
	}
	return sel
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"source": s.cfg.Path,
	})
}

func (s *Server) filters(c *fiber.Ctx) error {
	rs, err := s.load(c)
	if err != nil {
		return err
	}
	return c.JSON(rs.Options())
}

func (s *Server) summary(c *fiber.Ctx) error {
	_, dash, err := s.aggregate(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"summary":          dash.Summary,
		"filtered_records": dash.FilteredRecords,
	})
}

func (s *Server) dashboard(c *fiber.Ctx) error {
	_, dash, err := s.aggregate(c)
	if err != nil {
		return err
	}
	return c.JSON(dash)
}

func (s *Server) catalog(c *fiber.Ctx) error {
	return c.JSON(model.ViewCatalog)
}

func (s *Server) view(c *fiber.Ctx) error {
	name := model.ViewName(c.Params("name"))
	if _, ok := model.Describe(name); !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownView, name)
	}

	_, dash, err := s.aggregate(c)
	if err != nil {
		return err
	}
	v, _ := dash.View(name)
	return c.JSON(v)
}

// chart serves a view's PNG. Shipping charts are addressed as
// shipping_days and shipping_cost. A view with nothing to draw answers 204.
func (s *Server) chart(c *fiber.Ctx) error {
	requested := strings.TrimSuffix(c.Params("name"), ".png")
	name := model.ViewName(requested)
	switch requested {
	case string(model.ViewShipping) + "_days", string(model.ViewShipping) + "_cost":
		name = model.ViewShipping
	}
	if _, ok := model.Describe(name); !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownView, requested)
	}

	_, dash, err := s.aggregate(c)
	if err != nil {
		return err
	}
	v, _ := dash.View(name)

	charts, err := s.cfg.Renderer.Charts(v)
	if err != nil {
		return err
	}
	for _, ch := range charts {
		if ch.Name != requested && requested != string(name) {
			continue
		}
		var buf bytes.Buffer
		if err := ch.PNG(&buf); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(buf.Bytes())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) saveSnapshot(c *fiber.Ctx) error {
	if s.cfg.Snapshots == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "snapshots are not configured")
	}

	sel, dash, err := s.aggregate(c)
	if err != nil {
		return err
	}
	id, err := s.cfg.Snapshots.SaveSnapshot(c.UserContext(), s.cfg.Path, sel, dash)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"summary": dash.Summary,
	})
}

func (s *Server) getSnapshot(c *fiber.Ctx) error {
	if s.cfg.Snapshots == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "snapshots are not configured")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid snapshot id")
	}

	snap, err := s.cfg.Snapshots.GetSnapshot(c.UserContext(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}
