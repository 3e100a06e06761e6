package rod

const (
	LocatorHTML = `<!DOCTYPE html>
<html>
<body style="margin:0">
	<div id="container" style="width:400px">
		<div id="half" class="box wide" style="width:200px;height:20px">Half</div>
	</div>
	<a id="about" href="/about" title="About us">About</a>
	<button id="hidden" style="display:none">Hidden</button>
	<input id="name" type="text" value="John" />
	<input id="agree" type="checkbox" checked />
	<select id="color">
		<option>Red</option>
		<option selected>Green</option>
	</select>
	<button id="off" disabled>Off</button>
</body>
</html>`

	ScrollHTML = `<!DOCTYPE html>
<html>
<body>
	<div style="height:3000px">spacer</div>
	<a id="far" href="#far">Far away</a>
</body>
</html>`
)
