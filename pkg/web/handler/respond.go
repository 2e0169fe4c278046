package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	apperrors "mini-blog/pkg/common/errors"
)

// respondError writes the unified error body: {"code", "error", "fields"?}.
func respondError(ctx context.Context, c *app.RequestContext, err error) {
	status := apperrors.StatusCode(err)
	if status >= 500 {
		hlog.CtxErrorf(ctx, "%s %s failed: %v", c.Method(), c.Path(), err)
	}

	body := utils.H{
		"code":  status,
		"error": consts.StatusMessage(status),
	}
	if fields := apperrors.Fields(err); len(fields) > 0 {
		body["fields"] = fields
	}
	c.JSON(status, body)
}

// bind decodes the JSON body; malformed input is a validation failure.
func bind(c *app.RequestContext, req interface{}) error {
	if err := c.BindAndValidate(req); err != nil {
		return apperrors.NewValidation(apperrors.FieldErrors{"body": "malformed request: " + err.Error()})
	}
	return nil
}

// pathID parses the :id route parameter. Ids that cannot exist are reported as not found.
func pathID(c *app.RequestContext) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(nil)
	}
	return id, nil
}
