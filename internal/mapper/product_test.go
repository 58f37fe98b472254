package mapper_test

import (
	"testing"
	"time"

	"productapi/internal/dto"
	"productapi/internal/mapper"
	"productapi/internal/models"

	"github.com/stretchr/testify/assert"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestToProductResponse(t *testing.T) {
	p := &models.Product{
		ID:               7,
		Name:             "Widget",
		ProduceDate:      jan1,
		ManufacturePhone: "1234567890",
		ManufactureEmail: "a@x.com",
		IsAvailable:      true,
	}

	resp := mapper.ToProductResponse(p)

	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, "Widget", resp.Name)
	assert.Equal(t, jan1, resp.ProduceDate.Time())
	assert.Equal(t, "1234567890", resp.ManufacturePhone)
	assert.Equal(t, "a@x.com", resp.ManufactureEmail)
	assert.True(t, resp.IsAvailable)
}

func TestToProductResponse_StoredDateInOtherLocation(t *testing.T) {
	zones := []*time.Location{
		time.FixedZone("EST", -5*60*60),
		time.FixedZone("JST", 9*60*60),
	}

	for _, loc := range zones {
		t.Run(loc.String(), func(t *testing.T) {
			p := &models.Product{ProduceDate: jan1.In(loc)}

			resp := mapper.ToProductResponse(p)

			assert.Equal(t, "2024-01-01", resp.ProduceDate.String())
			assert.Equal(t, jan1, resp.ProduceDate.Time())
		})
	}
}

func TestToProductResponses_KeepsOrder(t *testing.T) {
	resp := mapper.ToProductResponses([]models.Product{{ID: 2}, {ID: 1}, {ID: 3}})

	assert.Len(t, resp, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{resp[0].ID, resp[1].ID, resp[2].ID})
	assert.NotNil(t, mapper.ToProductResponses(nil))
}

func TestFromCreateRequest(t *testing.T) {
	available := false
	p := mapper.FromCreateRequest(dto.CreateProductRequest{
		Name:             "Widget",
		ProduceDate:      dto.NewDate(jan1.Add(15 * time.Hour)),
		ManufacturePhone: "1234567890",
		ManufactureEmail: "client@x.com",
		IsAvailable:      &available,
	})

	assert.Zero(t, p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, jan1, p.ProduceDate)
	assert.Equal(t, "client@x.com", p.ManufactureEmail)
	assert.False(t, p.IsAvailable)
}

func TestApplyUpdateRequest_PreservesIdentityAndOwner(t *testing.T) {
	p := &models.Product{
		ID:               3,
		Name:             "Widget",
		ProduceDate:      jan1,
		ManufacturePhone: "1234567890",
		ManufactureEmail: "a@x.com",
		IsAvailable:      false,
	}
	available := true

	mapper.ApplyUpdateRequest(dto.UpdateProductRequest{
		Name:             "Widget2",
		ProduceDate:      dto.NewDate(jan1.AddDate(0, 0, 1)),
		ManufacturePhone: "0987654321",
		IsAvailable:      &available,
	}, p)

	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "a@x.com", p.ManufactureEmail)
	assert.Equal(t, "Widget2", p.Name)
	assert.Equal(t, jan1.AddDate(0, 0, 1), p.ProduceDate)
	assert.Equal(t, "0987654321", p.ManufacturePhone)
	assert.True(t, p.IsAvailable)
}
