package router

import (
	"ClaimVault/internal/handler"
	"ClaimVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	// The public upload relay lives outside /api: the token is the only
	// credential a claimant has.
	r.POST("/public-upload", handler.PublicUpload)
	r.GET("/public-upload/meta", handler.PublicUploadMeta)

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.GET("/activate", handler.Activate)
		api.POST("/login", handler.Login)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		policy := auth.Group("/policy-type")
		{
			policy.POST("/create", handler.CreatePolicyType)
			policy.GET("/list", handler.ListPolicyTypes)
			policy.POST("/update", handler.UpdatePolicyType)
			policy.POST("/delete", handler.DeletePolicyType)
		}

		claim := auth.Group("/claim")
		{
			claim.POST("/create", handler.CreateClaim)
			claim.POST("/list", handler.ListClaims)
			claim.GET("/:claimID", handler.GetClaim)
			claim.POST("/update", handler.UpdateClaim)
			claim.POST("/delete", handler.DeleteClaim)
			claim.POST("/upload", handler.ClaimUpload)
		}

		token := auth.Group("/token")
		{
			token.POST("/create", handler.IssueToken)
			token.POST("/revoke", handler.RevokeToken)
			token.GET("/list", handler.ListTokens)
			token.GET("/activity", handler.TokenActivity)
		}

		ledger := auth.Group("/ledger")
		{
			ledger.GET("/:claimID", handler.GetLedger)
			ledger.POST("/assign", handler.AssignDocument)
			ledger.POST("/unassign", handler.UnassignLabel)
			ledger.POST("/label/add", handler.AddLabel)
			ledger.POST("/label/remove", handler.RemoveLabel)
		}

		document := auth.Group("/document")
		{
			document.GET("/download/:documentID", handler.DownloadDocument)
			document.GET("/preview/:documentID", handler.PreviewDocument)
			document.POST("/search", handler.SearchDocuments)
			document.POST("/delete", handler.DeleteDocument)
			document.POST("/archive", handler.DownloadArchive)
		}

		recycle := auth.Group("/recycle")
		{
			recycle.GET("/list", handler.ListRecycle)
			recycle.POST("/restore", handler.RestoreDocument)
			recycle.POST("/purge", handler.PurgeDocument)
		}
	}
	return r
}
