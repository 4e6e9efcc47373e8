// server/internal/api/handlers/helpers.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Request dates arrive as "YYYY-MM-DD" from the portal forms.
const requestDateLayout = "2006-01-02"

func parseRequestDate(value string) (time.Time, error) {
	return time.Parse(requestDateLayout, value)
}

// listOptions builds mongo find options from ?page= and ?limit=, newest
// first. limit is capped so a portal cannot ask for the whole collection
// in one page by accident.
func listOptions(c *gin.Context) *options.FindOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	return options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
}

// dateRangeFilter adds ?from= / ?to= bounds to a mongo filter in place.
func dateRangeFilter(c *gin.Context, filter bson.M, field string) {
	bounds := bson.M{}
	if from := c.Query("from"); from != "" {
		if t, err := parseRequestDate(from); err == nil {
			bounds["$gte"] = t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := parseRequestDate(to); err == nil {
			// inclusive end of day
			bounds["$lt"] = t.AddDate(0, 0, 1)
		}
	}
	if len(bounds) > 0 {
		filter[field] = bounds
	}
}

// boolQueryFilter adds ?paid=true style flags to a filter in place.
func boolQueryFilter(c *gin.Context, filter bson.M, param, field string) {
	if raw := c.Query(param); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter[field] = v
		}
	}
}
