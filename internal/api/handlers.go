package api

import (
	"errors"
	"net/http"
	"strconv"

	"plotpirate/server/config"
	"plotpirate/server/internal/cache"
	"plotpirate/server/internal/geometry"
	"plotpirate/server/internal/models"
	"plotpirate/server/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
)

const missingBoundsMessage = "Missing bounds parameters (swLat, swLng, neLat, neLng)"

type Handler struct {
	search *search.Service
	cache  *cache.SearchCache
	logger *logrus.Logger
	hulls  *geojson.FeatureCollection
}

func NewHandler(svc *search.Service, searchCache *cache.SearchCache, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if searchCache == nil {
		searchCache = cache.NewSearchCache(0, 0, logger)
	}

	return &Handler{
		search: svc,
		cache:  searchCache,
		logger: logger,
		hulls:  geometry.MicromarketHulls(svc.All()),
	}
}

// requestLogger returns the request-scoped entry set by RequestLogger, or
// the handler's own logger when the middleware did not run.
func (h *Handler) requestLogger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(loggerContextKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(h.logger)
}

// GetListings returns one page of listings matching the query filters.
func (h *Handler) GetListings(c *gin.Context) {
	params := search.ParseParams(c.Request.URL.Query())

	result := h.cache.Fetch("list:"+params.Encode(), func() models.SearchResult {
		return h.search.Search(params.Criteria, params.Page, false)
	})

	h.requestLogger(c).WithFields(logrus.Fields{
		"total_listings": result.TotalListings,
		"page":           result.CurrentPage,
	}).Debug("Listings query served")

	c.JSON(http.StatusOK, result)
}

// GetMapListings returns every listing inside the required viewport bounds,
// unpaginated. format=geojson answers with a FeatureCollection.
func (h *Handler) GetMapListings(c *gin.Context) {
	params := search.ParseParams(c.Request.URL.Query())
	if params.Criteria.Bounds == nil {
		h.requestLogger(c).Warn("Map query without bounds")
		c.JSON(http.StatusBadRequest, gin.H{"error": missingBoundsMessage})
		return
	}
	params.Page = 1

	result := h.cache.Fetch("map:"+params.Encode(), func() models.SearchResult {
		return h.search.Search(params.Criteria, 1, true)
	})

	if c.Query("format") == "geojson" {
		c.JSON(http.StatusOK, geometry.MarkerCollection(result.Listings))
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": result.Listings})
}

func (h *Handler) GetListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	listing, err := h.search.GetByID(id)
	if errors.Is(err, search.ErrListingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.requestLogger(c).WithError(err).Error("Failed to get listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// GetFilters returns the values the filter form is built from.
func (h *Handler) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.search.Facets())
}

// GetMicromarketHulls returns the outline of every micromarket as GeoJSON.
func (h *Handler) GetMicromarketHulls(c *gin.Context) {
	c.JSON(http.StatusOK, h.hulls)
}

func (h *Handler) GetCities(c *gin.Context) {
	c.JSON(http.StatusOK, config.SupportedCities)
}

func (h *Handler) GetCity(c *gin.Context) {
	city := config.GetCityByName(c.Param("name"))
	if city == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		return
	}
	c.JSON(http.StatusOK, city)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"listings": h.search.TotalCount(),
	})
}
