package main

// @title           CreatinaMax API
// @version         1.0
// @description     API do backend da loja CreatinaMax (Flora Vitalis): catálogo, estoque por lotes, checkout e pagamentos
// @termsOfService  http://swagger.io/terms/

// @contact.name   Flora Vitalis
// @contact.email  dev@floravitalis.com.br

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
