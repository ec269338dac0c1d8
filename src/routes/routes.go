package routes

import (
	"mcnutrition/src/interface/handler"
	"mcnutrition/src/middleware"
	"mcnutrition/src/service"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the handler set wired into the router.
type Handlers struct {
	Menu    *handler.MenuHandler
	Planner *handler.PlannerHandler
	Meal    *handler.MealHandler
	Auth    *handler.AuthHandler
}

// SetupRoutes sets up all API routes
func SetupRoutes(r *gin.Engine, h Handlers, jwtService service.JWTService, sessions service.SessionService, adminKeyHash string) {
	api := r.Group("/api")
	api.Use(middleware.IdentityMiddleware(jwtService, sessions))

	// 認証不要のパブリックルート
	{
		api.POST("/session", h.Auth.CreateSession) // POST   /api/session
		api.GET("/user", h.Auth.GetUser)           // GET    /api/user

		api.GET("/menu", h.Menu.GetMenu)               // GET /api/menu
		api.GET("/menu/criteria", h.Menu.ListCriteria) // GET /api/menu/criteria
		api.GET("/menu/search", h.Menu.SearchMenu)     // GET /api/menu/search
	}

	// アイデンティティ（認証済みユーザーまたは匿名セッション）必須
	planner := api.Group("/planner")
	planner.Use(middleware.RequireIdentity())
	{
		planner.GET("", h.Planner.GetPlanner)        // GET    /api/planner
		planner.POST("/toggle", h.Planner.Toggle)    // POST   /api/planner/toggle
		planner.POST("/remove", h.Planner.Remove)    // POST   /api/planner/remove
		planner.POST("/clear", h.Planner.Clear)      // POST   /api/planner/clear
		planner.POST("/rename", h.Planner.Rename)    // POST   /api/planner/rename
		planner.POST("/save", h.Planner.SaveMeal)    // POST   /api/planner/save
		planner.DELETE("", h.Planner.DeletePlanner)  // DELETE /api/planner

		// ログイン前の退避と保存済みミールの読み込み
		planner.POST("/stage-login", h.Planner.StageLogin)  // POST /api/planner/stage-login
		planner.POST("/load/:mealID", h.Planner.LoadMeal)   // POST /api/planner/load/:mealID
	}

	// 認証済みユーザー必須
	meals := api.Group("/meals")
	meals.Use(middleware.RequireAuth())
	{
		meals.GET("", h.Meal.ListMeals)               // GET    /api/meals
		meals.GET("/:mealID", h.Meal.GetMeal)         // GET    /api/meals/:mealID
		meals.DELETE("/:mealID", h.Meal.DeleteMeal)   // DELETE /api/meals/:mealID
	}

	// 管理APIキー必須のカタログCRUD
	admin := api.Group("/admin/menu")
	admin.Use(middleware.AdminMiddleware(adminKeyHash))
	{
		admin.POST("", h.Menu.CreateMenuItem)       // POST   /api/admin/menu
		admin.GET("", h.Menu.ListMenuItems)         // GET    /api/admin/menu
		admin.GET("/:id", h.Menu.GetMenuItem)       // GET    /api/admin/menu/:id
		admin.PUT("/:id", h.Menu.UpdateMenuItem)    // PUT    /api/admin/menu/:id
		admin.DELETE("/:id", h.Menu.DeleteMenuItem) // DELETE /api/admin/menu/:id
	}
}
