package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/plushka/stitchfarm/internal/domain"
	"github.com/plushka/stitchfarm/internal/handler"
	"github.com/plushka/stitchfarm/internal/market"
)

func TestMarketHandler_HandleSellToSystem(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockMarketService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: handler.SellToSystemRequest{ItemType: "wheat", Quantity: 3},
			setupMock: func(m *MockMarketService) {
				m.On("SellToSystem", mock.Anything, testUserID, "wheat", 3).
					Return(&market.SellResult{ItemType: "wheat", Quantity: 3, UnitPrice: 2, Total: 6}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown Item Rejected By Validator",
			body:           handler.SellToSystemRequest{ItemType: "gold", Quantity: 3},
			setupMock:      func(m *MockMarketService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Not Enough Stock",
			body: handler.SellToSystemRequest{ItemType: "wheat", Quantity: 30},
			setupMock: func(m *MockMarketService) {
				m.On("SellToSystem", mock.Anything, testUserID, "wheat", 30).
					Return(nil, domain.ErrInsufficientStock)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMarketService)
			tt.setupMock(svc)

			req := newAuthedRequest(t, http.MethodPost, "/api/v1/market/sell-to-system", tt.body, testUserID)
			rec := httptest.NewRecorder()

			handler.NewMarketHandler(svc).HandleSellToSystem(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestMarketHandler_HandleListForSale(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockMarketService)
		svc.On("ListForSale", mock.Anything, testUserID, "eggs", 4, 5).
			Return(&domain.MarketListing{ID: testListingID, ItemType: "eggs", Quantity: 4, PricePerUnit: 5}, nil)

		req := newAuthedRequest(t, http.MethodPost, "/api/v1/market/list",
			handler.ListForSaleRequest{ItemType: "eggs", Quantity: 4, UnitPrice: 5}, testUserID)
		rec := httptest.NewRecorder()

		handler.NewMarketHandler(svc).HandleListForSale(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var listing domain.MarketListing
		decodeBody(t, rec, &listing)
		assert.Equal(t, testListingID, listing.ID)
	})

	t.Run("Zero Price Rejected", func(t *testing.T) {
		svc := new(MockMarketService)

		req := newAuthedRequest(t, http.MethodPost, "/api/v1/market/list",
			handler.ListForSaleRequest{ItemType: "eggs", Quantity: 4, UnitPrice: 0}, testUserID)
		rec := httptest.NewRecorder()

		handler.NewMarketHandler(svc).HandleListForSale(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ListForSale",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMarketHandler_HandleBuyListing(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name           string
		setupMock      func(*MockMarketService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			setupMock: func(m *MockMarketService) {
				m.On("BuyListing", mock.Anything, testUserID, testListingID).
					Return(&domain.MarketListing{ID: testListingID, Status: domain.ListingStatusSold}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Own Listing",
			setupMock: func(m *MockMarketService) {
				m.On("BuyListing", mock.Anything, testUserID, testListingID).
					Return(nil, domain.ErrSelfTrade)
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  handler.ErrMsgSelfTradeHTTP,
		},
		{
			name: "Already Settled",
			setupMock: func(m *MockMarketService) {
				m.On("BuyListing", mock.Anything, testUserID, testListingID).
					Return(nil, domain.ErrListingNotActive)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  handler.ErrMsgListingNotActiveHTTP,
		},
		{
			name: "Not Found",
			setupMock: func(m *MockMarketService) {
				m.On("BuyListing", mock.Anything, testUserID, testListingID).
					Return(nil, domain.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  handler.ErrMsgListingNotFoundHTTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMarketService)
			tt.setupMock(svc)

			req := newAuthedRequest(t, http.MethodPost, "/api/v1/market/buy",
				handler.ListingActionRequest{ListingID: testListingID}, testUserID)
			rec := httptest.NewRecorder()

			handler.NewMarketHandler(svc).HandleBuyListing(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError != "" {
				var resp handler.ErrorResponse
				decodeBody(t, rec, &resp)
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestMarketHandler_HandleCancelListing(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockMarketService)
		svc.On("CancelListing", mock.Anything, testUserID, testListingID).Return(nil)

		req := newAuthedRequest(t, http.MethodPost, "/api/v1/market/cancel",
			handler.ListingActionRequest{ListingID: testListingID}, testUserID)
		rec := httptest.NewRecorder()

		handler.NewMarketHandler(svc).HandleCancelListing(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Not The Seller", func(t *testing.T) {
		svc := new(MockMarketService)
		svc.On("CancelListing", mock.Anything, testUserID, testListingID).
			Return(domain.ErrUnauthorized)

		req := newAuthedRequest(t, http.MethodPost, "/api/v1/market/cancel",
			handler.ListingActionRequest{ListingID: testListingID}, testUserID)
		rec := httptest.NewRecorder()

		handler.NewMarketHandler(svc).HandleCancelListing(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestMarketHandler_HandleGetListings(t *testing.T) {
	svc := new(MockMarketService)
	svc.On("OpenListings", mock.Anything, testUserID).
		Return([]domain.MarketListing{{ID: testListingID, SellerID: "user-bob"}}, nil)

	req := newAuthedRequest(t, http.MethodGet, "/api/v1/market/listings", nil, testUserID)
	rec := httptest.NewRecorder()

	handler.NewMarketHandler(svc).HandleGetListings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var listings []domain.MarketListing
	decodeBody(t, rec, &listings)
	assert.Len(t, listings, 1)
}
