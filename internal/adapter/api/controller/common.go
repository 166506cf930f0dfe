package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt lê um parâmetro de query como inteiro, retornando zero se ausente
// ou inválido
func queryInt(ctx *gin.Context, name string) int {
	value, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		return 0
	}
	return value
}
