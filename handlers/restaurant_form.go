package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"food-ordering-api/apperr"
	"food-ordering-api/imagestore"
	"food-ordering-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// maxFormSize bounds the whole multipart body: the image plus the text fields.
const maxFormSize = imagestore.MaxImageSize + 1<<20

var (
	cuisineKey  = regexp.MustCompile(`^cuisines\[(\d*)\]$`)
	menuItemKey = regexp.MustCompile(`^menuItems\[(\d+)\]\[(_id|name|price)\]$`)
)

type MenuItemForm struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

// RestaurantForm is the multipart body of restaurant create and update.
type RestaurantForm struct {
	RestaurantName        string         `json:"restaurantName" binding:"required"`
	City                  string         `json:"city" binding:"required"`
	Country               string         `json:"country" binding:"required"`
	DeliveryPrice         float64        `json:"deliveryPrice" binding:"gte=0"`
	EstimatedDeliveryTime int            `json:"estimatedDeliveryTime" binding:"gte=0"`
	Cuisines              []string       `json:"cuisines" binding:"required,min=1,dive,required"`
	MenuItems             []MenuItemForm `json:"menuItems" binding:"dive"`

	Image *imagestore.Image `json:"-"`
}

// BindRestaurantForm parses and validates a RestaurantForm. The image is
// optional here; the create operation enforces it.
func BindRestaurantForm(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormSize)
	mf, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &apperr.Error{Kind: apperr.KindValidation, Message: "Image must be 5MB or smaller", Err: err}
		}
		return &apperr.Error{Kind: apperr.KindValidation, Message: "Invalid form data", Err: err}
	}

	form, err := parseRestaurantForm(mf.Value)
	if err != nil {
		return err
	}
	if err := binding.Validator.ValidateStruct(form); err != nil {
		return &apperr.Error{Kind: apperr.KindValidation, Message: middleware.ValidationMessage(err), Err: err}
	}

	if files := mf.File["imageFile"]; len(files) > 0 {
		img, err := readImage(files[0])
		if err != nil {
			return err
		}
		form.Image = img
	}

	middleware.SetBody(c, form)
	return nil
}

func parseRestaurantForm(values map[string][]string) (*RestaurantForm, error) {
	form := &RestaurantForm{
		RestaurantName: firstValue(values, "restaurantName"),
		City:           firstValue(values, "city"),
		Country:        firstValue(values, "country"),
	}

	price, err := parseFloatField(values, "deliveryPrice")
	if err != nil {
		return nil, err
	}
	form.DeliveryPrice = price

	eta := firstValue(values, "estimatedDeliveryTime")
	if eta == "" {
		return nil, apperr.Validation("estimatedDeliveryTime is required")
	}
	if form.EstimatedDeliveryTime, err = strconv.Atoi(eta); err != nil {
		return nil, apperr.Validation("estimatedDeliveryTime must be an integer")
	}

	form.Cuisines = parseCuisines(values)
	if form.MenuItems, err = parseMenuItems(values); err != nil {
		return nil, err
	}
	return form, nil
}

func firstValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func parseFloatField(values map[string][]string, key string) (float64, error) {
	raw := firstValue(values, key)
	if raw == "" {
		return 0, apperr.Validation(key + " is required")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperr.Validation(key + " must be a number")
	}
	return f, nil
}

// parseCuisines accepts repeated "cuisines", "cuisines[]" and indexed
// "cuisines[i]" keys. Indexed entries keep their index order.
func parseCuisines(values map[string][]string) []string {
	var out []string
	out = append(out, trimAll(values["cuisines"])...)

	type indexed struct {
		i int
		v []string
	}
	var entries []indexed
	for key, vs := range values {
		m := cuisineKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		if m[1] == "" {
			out = append(out, trimAll(vs)...)
			continue
		}
		i, _ := strconv.Atoi(m[1])
		entries = append(entries, indexed{i: i, v: vs})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].i < entries[b].i })
	for _, e := range entries {
		out = append(out, trimAll(e.v)...)
	}
	return out
}

func trimAll(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// parseMenuItems collects menuItems[i][_id|name|price] keys into items
// ordered by index.
func parseMenuItems(values map[string][]string) ([]MenuItemForm, error) {
	byIndex := map[int]*MenuItemForm{}
	priced := map[int]bool{}
	for key, vs := range values {
		m := menuItemKey.FindStringSubmatch(key)
		if m == nil || len(vs) == 0 {
			continue
		}
		i, _ := strconv.Atoi(m[1])
		item, ok := byIndex[i]
		if !ok {
			item = &MenuItemForm{}
			byIndex[i] = item
		}

		value := strings.TrimSpace(vs[0])
		switch m[2] {
		case "_id":
			item.ID = value
		case "name":
			item.Name = value
		case "price":
			if value == "" {
				continue
			}
			price, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, apperr.Validation(fmt.Sprintf("menuItems[%d].price must be a number", i))
			}
			item.Price = price
			priced[i] = true
		}
	}

	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	items := make([]MenuItemForm, 0, len(indexes))
	for _, i := range indexes {
		if !priced[i] {
			return nil, apperr.Validation(fmt.Sprintf("menuItems[%d].price is required", i))
		}
		items = append(items, *byIndex[i])
	}
	return items, nil
}

func readImage(fh *multipart.FileHeader) (*imagestore.Image, error) {
	if fh.Size > imagestore.MaxImageSize {
		return nil, apperr.Validation("Image must be 5MB or smaller")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, imagestore.MaxImageSize+1))
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	if len(data) > imagestore.MaxImageSize {
		return nil, apperr.Validation("Image must be 5MB or smaller")
	}
	if len(data) == 0 {
		return nil, apperr.Validation("imageFile is empty")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &imagestore.Image{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}
