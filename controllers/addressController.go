package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aiaero/shopsite-api/accounts"
	"github.com/aiaero/shopsite-api/initializers"
	"github.com/aiaero/shopsite-api/models"
	"github.com/gin-gonic/gin"
)

func ListAddresses(ctx *gin.Context) {
	addresses, err := accounts.ListAddresses(initializers.DB, currentUserID(ctx))
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
}

func CreateAddress(ctx *gin.Context) {
	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := accounts.CreateAddress(initializers.DB, currentUserID(ctx), &address); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create address")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"address": address})
}

func UpdateAddress(ctx *gin.Context) {
	addressID, err := strconv.Atoi(ctx.Param("addressId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse addressId")
		return
	}

	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	address.ID = uint(addressID)

	if err := accounts.UpdateAddress(initializers.DB, currentUserID(ctx), &address); err != nil {
		if errors.Is(err, accounts.ErrAddressNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update address")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"address": address})
}

func DeleteAddress(ctx *gin.Context) {
	addressID, err := strconv.Atoi(ctx.Param("addressId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse addressId")
		return
	}

	if err := accounts.DeleteAddress(initializers.DB, currentUserID(ctx), uint(addressID)); err != nil {
		if errors.Is(err, accounts.ErrAddressNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete address")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address removed."})
}

func SetDefaultAddress(ctx *gin.Context) {
	addressID, err := strconv.Atoi(ctx.Param("addressId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse addressId")
		return
	}

	if err := accounts.SetDefaultAddress(initializers.DB, currentUserID(ctx), uint(addressID)); err != nil {
		if errors.Is(err, accounts.ErrAddressNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to set default address")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Default address updated."})
}
